// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- ResolveQuery ---

func TestResolveQuery(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		want      string
		wantErr   bool
	}{
		{"empty", "", "", true},
		{"spaces only", "  ", "", true},
		{"tabs and newlines", "\t\n  \r\n", "", true},
		{"padded", "  foo  ", "foo", false},
		{"inner whitespace kept", "  null pointer\texception ", "null pointer\texception", false},
		{"plain", "NullPointerException", "NullPointerException", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveQuery(tt.selection)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrEmptySelection)
				assert.Equal(t, KindEmptySelection, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- Error taxonomy ---

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain error", errors.New("boom"), KindUnknown},
		{"empty selection", ErrEmptySelection, KindEmptySelection},
		{"missing credential", ErrMissingCredential, KindMissingCredential},
		{"wrapped rejection", fmt.Errorf("lookup: %w", rejected("key expired")), KindAPIRejected},
		{"no results", noResults("foo"), KindNoResults},
		{"transport", transportStatus(502), KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "no text selected", ErrEmptySelection.Error())
	assert.Contains(t, ErrMissingCredential.Error(), "API key")
	assert.Contains(t, noResults("foo bar").Error(), `"foo bar"`)
	assert.Contains(t, rejected("key expired").Error(), "key expired")
	assert.Contains(t, transportStatus(503).Error(), "HTTP 503")

	cause := errors.New("connection refused")
	err := transportErr(cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestErrorIsMatchesByKind(t *testing.T) {
	assert.ErrorIs(t, &Error{Kind: KindMissingCredential, Message: "other"}, ErrMissingCredential)
	assert.NotErrorIs(t, ErrEmptySelection, ErrMissingCredential)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "api_rejected", KindAPIRejected.String())
	assert.Equal(t, "no_results", KindNoResults.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
