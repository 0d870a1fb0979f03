// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the HTML documents shown in the editor panel:
// a loading placeholder, a result list, and an error notice.
//
// Every remote or user-supplied value reaches the markup through
// html/template, so the five reserved characters (& < > " ') are escaped in
// one place and unsafe URL schemes in links are neutralised.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/stackfind/internal/search"
	"github.com/pdiddy/stackfind/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Hints are the static remediation tips shown under every error.
var Hints = []string{
	"Check that a valid Stack Exchange API key is configured (stackexchange.keys).",
	"Check your network connection and any proxy settings.",
}

type loadingData struct {
	Query string
}

type errorData struct {
	Title   string
	Message string
	Hints   []string
}

// Loading returns the placeholder shown while a lookup is in flight.
func Loading(query string) string {
	return execute("loading.html", loadingData{Query: query})
}

// Page returns the result list for page.
func Page(page types.ResultPage) string {
	return execute("page.html", page)
}

// Error returns a document describing err with the static hints.
func Error(err error) string {
	return execute("error.html", errorData{
		Title:   Headline(search.KindOf(err)),
		Message: Message(err),
		Hints:   Hints,
	})
}

// Headline returns the short heading for an error kind.
func Headline(k search.Kind) string {
	switch k {
	case search.KindEmptySelection:
		return "No text selected"
	case search.KindMissingCredential:
		return "Missing API key"
	case search.KindTransport:
		return "Could not reach Stack Exchange"
	case search.KindAPIRejected:
		return "Stack Exchange rejected the request"
	case search.KindNoResults:
		return "No results"
	default:
		return "Search failed"
	}
}

// Message returns the human-readable sentence for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func execute(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are parsed at init and the data types are fixed, so
		// this only fires on a programming error.
		panic(fmt.Sprintf("render %s: %v", name, err))
	}
	return buf.String()
}

// JSON writes page as indented JSON to w.
func JSON(w io.Writer, page types.ResultPage) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

// YAML writes page as YAML to w.
func YAML(w io.Writer, page types.ResultPage) error {
	data, err := yaml.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
