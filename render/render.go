// Package render turns a computed tag cloud into an HTML page.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NitroLine/tagcloud/internal/ioretry"
	"github.com/NitroLine/tagcloud/tagcloud"
)

// ErrUnwritable wraps every failure to produce the output.
var ErrUnwritable = errors.New("output unwritable")

const outputFilePerms = 0o644

// Stylesheet is the course stylesheet defining the f<size> classes.
const Stylesheet = "http://web.cse.ohio-state.edu/software/2231/web-sw2/assignments/projects/tag-cloud-generator/data/tagcloud.css"

var page = template.Must(template.New("tagcloud").Parse(`<html>
<head>
<title>{{.Title}}</title>
<meta name="generator" content="tagcloud">
{{- if .RunID}}
<meta name="tagcloud-run" content="{{.RunID}}">
{{- end}}
<meta name="tagcloud-counts" content="{{.MinCount}} {{.MaxCount}}">
<link href="{{.Stylesheet}}" rel="stylesheet" type="text/css">
<link href="tagcloud.css" rel="stylesheet" type="text/css">
</head>
<body style="background-color:#70839e;">
<h2>Top {{.Size}} words in {{.Title}}</h2>
<hr>
<div class="cdiv">
<p class="cbox">
{{- range .Entries}}
<span style="cursor:default" class="f{{.FontSize}}" title="count: {{.OccurrenceCount}}">{{.Tag}}</span>
{{- end}}
</p>
</div>
</body>
</html>
`))

// Page is everything the HTML page shows.
type Page struct {
	Title string
	// Size is the requested selection size, which may exceed len(Entries).
	Size     int
	Entries  []tagcloud.Entry
	MinCount int
	MaxCount int
	RunID    string
}

// NewPage describes cloud under the given title.
func NewPage(title string, size int, cloud *tagcloud.Cloud) Page {
	return Page{
		Title:    title,
		Size:     size,
		Entries:  cloud.Entries,
		MinCount: cloud.MinCount,
		MaxCount: cloud.MaxCount,
	}
}

// HTML writes p to w. Nothing is written if rendering fails.
func HTML(w io.Writer, p Page) error {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Page
		Stylesheet string
	}{p, Stylesheet})
	if err != nil {
		return fmt.Errorf("%w: rendering: %w", ErrUnwritable, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	return nil
}

// IsStdout reports whether path names standard output rather than a file.
func IsStdout(path string) bool {
	return path == "" || path == "-"
}

// Write renders p to stdout when path is empty or "-", and into the file at
// path otherwise.
func Write(ctx context.Context, path string, stdout io.Writer, p Page) error {
	if IsStdout(path) {
		return HTML(stdout, p)
	}
	return WriteFile(ctx, path, p)
}

// WriteFile renders p into path. The file is replaced atomically so a failed
// run never leaves a truncated page behind.
func WriteFile(ctx context.Context, path string, p Page) error {
	var buf bytes.Buffer
	if err := HTML(&buf, p); err != nil {
		return err
	}

	err := ioretry.Do(ctx, "write output", func() error {
		return writeAtomic(path, buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	slog.Debug("Wrote output", "path", path, "bytes", buf.Len(), "entries", len(p.Entries))
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Chmod(tmpPath, outputFilePerms); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming output: %w", err)
	}
	return nil
}
