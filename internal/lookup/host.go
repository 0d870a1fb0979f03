// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SelectionSource returns the text currently highlighted in the editor,
// possibly empty.
type SelectionSource interface {
	Selection(ctx context.Context) (string, error)
}

// Panel is a display surface beside the editor. Show replaces whatever the
// panel currently displays; nothing flows back to the caller.
type Panel interface {
	Show(doc string) error
}

// Display opens a new panel for the invocation id, titled after the query.
type Display interface {
	Open(ctx context.Context, id, title string) (Panel, error)
}

// Notifier surfaces a lightweight notice for runs that end before a panel
// is opened.
type Notifier interface {
	Notify(ctx context.Context, err error)
}

// Host is everything an invocation pulls from or pushes to the editor.
type Host interface {
	SelectionSource
	Display
	Notifier
}

// HostParts assembles a Host from independent parts.
type HostParts struct {
	SelectionSource
	Display
	Notifier
}

// StaticSelection is a selection known up front, such as a CLI argument.
type StaticSelection string

func (s StaticSelection) Selection(context.Context) (string, error) { return string(s), nil }

// ReaderSelection reads the whole selection from R (stdin for the CLI).
type ReaderSelection struct {
	R io.Reader
}

func (s ReaderSelection) Selection(context.Context) (string, error) {
	data, err := io.ReadAll(s.R)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriterNotifier prints notices to W, prefixed with Prefix.
type WriterNotifier struct {
	W      io.Writer
	Prefix string
}

func (n WriterNotifier) Notify(_ context.Context, err error) {
	fmt.Fprintf(n.W, "%s%v\n", n.Prefix, err)
}

// MemoryPanel keeps the last document shown.
type MemoryPanel struct {
	mu    sync.Mutex
	shows int
	doc   string
}

func (p *MemoryPanel) Show(doc string) error {
	p.mu.Lock()
	p.doc = doc
	p.shows++
	p.mu.Unlock()
	return nil
}

// Content returns the document currently displayed.
func (p *MemoryPanel) Content() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc
}

// Shows returns how many documents have been shown.
func (p *MemoryPanel) Shows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows
}

// MemoryDisplay opens MemoryPanels and remembers the most recent one.
type MemoryDisplay struct {
	mu   sync.Mutex
	last *MemoryPanel
}

func (d *MemoryDisplay) Open(context.Context, string, string) (Panel, error) {
	p := &MemoryPanel{}
	d.mu.Lock()
	d.last = p
	d.mu.Unlock()
	return p, nil
}

// Last returns the most recently opened panel, or nil if none was opened.
func (d *MemoryDisplay) Last() *MemoryPanel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// FileDisplay renders panels into a single HTML file that an editor webview
// or browser tab watches. Every Show replaces the file atomically.
type FileDisplay struct {
	Path string
}

func (d FileDisplay) Open(context.Context, string, string) (Panel, error) {
	if strings.TrimSpace(d.Path) == "" {
		return nil, fmt.Errorf("no output file given")
	}
	return filePanel{path: d.Path}, nil
}

type filePanel struct {
	path string
}

func (p filePanel) Show(doc string) error {
	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", p.path, err)
	}
	return nil
}
