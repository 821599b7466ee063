package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
)

// Ensure Exporter implements wikinews.Exporter at compile time.
var _ wikinews.Exporter = (*Exporter)(nil)

// Exporter writes each snapshot as a markdown file named after its date.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
type Exporter struct {
	baseDir  string
	name     string
	template string
	now      func() time.Time
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithTemplate sets the story template used to render each file body.
// Defaults to wikinews.DefaultFormat.
func WithTemplate(template string) ExportOption {
	return func(e *Exporter) {
		e.template = template
	}
}

// WithNow sets the clock used for the exported timestamp.
func WithNow(now func() time.Time) ExportOption {
	return func(e *Exporter) {
		e.now = now
	}
}

// NewExporter creates a new Exporter.
func NewExporter(baseDir, name string, opts ...ExportOption) *Exporter {
	e := &Exporter{
		baseDir:  baseDir,
		name:     name,
		template: wikinews.DefaultFormat,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Export renders snap into the temporary directory.
func (e *Exporter) Export(ctx context.Context, snap *wikinews.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	path := filepath.Join(e.tempDir(), snap.Key()+".md")
	return os.WriteFile(path, []byte(e.render(snap)), 0644)
}

// render formats snap with a YAML frontmatter header.
func (e *Exporter) render(snap *wikinews.Snapshot) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("date: ")
	b.WriteString(snap.Key())
	b.WriteString("\nstories: ")
	b.WriteString(strconv.Itoa(snap.Count()))
	b.WriteString("\nexported: ")
	b.WriteString(e.now().UTC().Format(time.RFC3339))
	b.WriteString("\n---\n\n")
	b.WriteString(snap.Format(e.template))
	return b.String()
}

// Commit replaces the destination directory with the exported files.
// Committing without any export leaves an empty directory.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort removes the temporary directory.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
