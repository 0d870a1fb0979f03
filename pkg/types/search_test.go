// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResultPage(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"empty", 0, 0},
		{"under limit", 2, 2},
		{"at limit", DisplayLimit, DisplayLimit},
		{"over limit", 12, DisplayLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]Question, tt.count)
			for i := range items {
				items[i] = Question{Title: fmt.Sprintf("q%d", i)}
			}

			page := NewResultPage("npe", items)

			assert.Equal(t, "npe", page.Query)
			assert.Len(t, page.Items, tt.want)
			for i, q := range page.Items {
				assert.Equal(t, fmt.Sprintf("q%d", i), q.Title, "order must be preserved")
			}
		})
	}
}
