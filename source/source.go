// Package source opens the document a tag cloud is built from and exposes it
// as a sequence of lines.
package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/ledongthuc/pdf"

	"github.com/NitroLine/tagcloud/internal/ioretry"
)

// ErrUnreadable wraps every failure to open or read the input.
var ErrUnreadable = errors.New("input unreadable")

// StdinName is the document name used when reading standard input.
const StdinName = "stdin"

// Options tune how a document is opened.
type Options struct {
	// Progress shows a progress bar while the input is read.
	Progress bool
	// ProgressOutput receives the progress bar. Defaults to os.Stderr.
	ProgressOutput io.Writer
	// Stdin is read when the path is empty or "-". Defaults to os.Stdin.
	Stdin io.Reader
}

// Document is an opened input. Lines can be ranged over once.
type Document struct {
	name  string
	r     *bufio.Reader
	file  *os.File
	bar   *pb.ProgressBar
	err   error
	lines int
}

// Open opens path for reading. An empty path or "-" reads opts.Stdin.
// Paths ending in .pdf are converted to plain text first.
func Open(ctx context.Context, path string, opts Options) (*Document, error) {
	if path == "" || path == "-" {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		d := &Document{name: StdinName}
		d.r = bufio.NewReader(d.track(in, 0, opts))
		return d, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return openPDF(ctx, path, opts)
	}

	var file *os.File
	err := ioretry.Do(ctx, "open input", func() error {
		var err error
		file, err = os.Open(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	slog.Debug("Opened input", "path", path, "bytes", info.Size())
	d := &Document{name: filepath.Base(path), file: file}
	d.r = bufio.NewReader(d.track(file, info.Size(), opts))
	return d, nil
}

func openPDF(ctx context.Context, path string, opts Options) (*Document, error) {
	d := &Document{name: filepath.Base(path)}
	var data []byte
	err := ioretry.Do(ctx, "read pdf", func() error {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			if err := file.Close(); err != nil {
				slog.Debug("Failed to close input", "path", path, "error", err)
			}
		}()
		var size int64
		if info, err := file.Stat(); err == nil {
			size = info.Size()
		}
		data, err = io.ReadAll(d.track(file, size, opts))
		return err
	})
	d.finishProgress()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	text, err := pdfText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	slog.Debug("Extracted pdf text", "path", path, "pdf_bytes", len(data), "text_bytes", len(text))
	d.r = bufio.NewReader(bytes.NewReader(text))
	return d, nil
}

// pdfText returns the plain text of every page of a PDF document.
func pdfText(data []byte) (text []byte, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extracting pdf text: %w", err)
	}
	return io.ReadAll(plain)
}

// track wraps r in a progress bar when opts asks for one.
func (d *Document) track(r io.Reader, size int64, opts Options) io.Reader {
	if !opts.Progress {
		return r
	}
	d.finishProgress()
	out := opts.ProgressOutput
	if out == nil {
		out = os.Stderr
	}
	d.bar = pb.Full.New(0).SetTotal(size).Set(pb.Bytes, true).SetWriter(out).Start()
	return d.bar.NewProxyReader(r)
}

func (d *Document) finishProgress() {
	if d.bar != nil {
		d.bar.Finish()
		d.bar = nil
	}
}

// Name is the base name of the input file, or StdinName.
func (d *Document) Name() string {
	return d.name
}

// Lines yields the document line by line, without line terminators.
// Lines may be of any length. Call Err after ranging to learn whether the
// whole document was read.
func (d *Document) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := d.r.ReadString('\n')
			if line != "" || err == nil {
				d.lines++
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				if !yield(line) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					d.err = fmt.Errorf("%w: reading %s: %w", ErrUnreadable, d.name, err)
				}
				d.finishProgress()
				return
			}
		}
	}
}

// Err returns the first read error met by Lines.
func (d *Document) Err() error {
	return d.err
}

// Close releases the underlying file.
func (d *Document) Close() error {
	d.finishProgress()
	slog.Debug("Closing input", "name", d.name, "lines", d.lines)
	if d.file == nil {
		return nil
	}
	if err := d.file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrUnreadable, d.name, err)
	}
	return nil
}
