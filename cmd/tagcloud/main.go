// Package main implements a CLI that renders the most frequent words of a
// text document as an HTML tag cloud.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/NitroLine/tagcloud/render"
	"github.com/NitroLine/tagcloud/source"
	"github.com/NitroLine/tagcloud/tagcloud"
)

const (
	exitConfig = 1
	exitIO     = 2
)

// errUsage marks flag syntax errors the flag set has already reported along
// with the usage text.
var errUsage = errors.New("usage")

type Options struct {
	From     string
	To       string
	Size     string
	FontMin  int
	FontMax  int
	Title    string
	Progress bool
	Verbose  bool

	// Config is filled in by Validate.
	Config tagcloud.Config
}

func (o *Options) Validate() error {
	size, err := tagcloud.ParseSize(o.Size)
	if err != nil {
		return err
	}
	cfg := tagcloud.Config{
		Size:  size,
		Fonts: tagcloud.FontRange{Min: o.FontMin, Max: o.FontMax},
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !render.IsStdout(o.To) {
		stat, err := os.Stat(o.To)
		if err == nil && stat.IsDir() {
			return fmt.Errorf("output %s is a directory", o.To)
		}
	}
	o.Config = cfg
	return nil
}

func ParseFlags(args []string, output io.Writer) (*Options, error) {
	var opts Options
	fs := flag.NewFlagSet("tagcloud", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.From, "from", "", "file to read, plain text or .pdf. by default - stdin")
	fs.StringVar(&opts.To, "to", "", "html file to write. by default - stdout")
	fs.StringVar(&opts.Size, "n", "100", "number of most frequent words to include")
	fs.IntVar(&opts.FontMin, "font-min", tagcloud.DefaultFontMin, "font size of the least frequent included word")
	fs.IntVar(&opts.FontMax, "font-max", tagcloud.DefaultFontMax, "font size of the most frequent included word")
	fs.StringVar(&opts.Title, "title", "", "page title. by default - input file name")
	fs.BoolVar(&opts.Progress, "progress", false, "show a progress bar while reading input")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: tagcloud [options]\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Renders the most frequent words of a document as an HTML tag cloud.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  tagcloud -from book.txt -to cloud.html -n 50\n")
		_, _ = fmt.Fprintf(fs.Output(), "  cat book.txt | tagcloud -n 20 -font-max 78 > cloud.html\n")
	}
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func setupLogging(verbose bool, runID string) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger.With("run", runID))
}

func process(ctx context.Context, opts *Options, runID string, stdin io.Reader, stdout io.Writer) error {
	doc, err := source.Open(ctx, opts.From, source.Options{Progress: opts.Progress, Stdin: stdin})
	if err != nil {
		return err
	}
	defer func() {
		if err := doc.Close(); err != nil {
			slog.Warn("Failed to close input", "error", err)
		}
	}()

	cloud, err := tagcloud.Build(doc.Lines(), opts.Config)
	if err != nil {
		return err
	}
	if err := doc.Err(); err != nil {
		return err
	}

	title := opts.Title
	if title == "" {
		title = doc.Name()
	}
	page := render.NewPage(title, opts.Config.Size, cloud)
	page.RunID = runID

	slog.Info("Built tag cloud", "input", doc.Name(), "words", cloud.Total, "distinct", cloud.Distinct,
		"selected", len(cloud.Entries), "min_count", cloud.MinCount, "max_count", cloud.MaxCount)

	if err := render.Write(ctx, opts.To, stdout, page); err != nil {
		return err
	}
	if !render.IsStdout(opts.To) {
		_, _ = fmt.Fprintln(stdout, "File successfully generated")
	}
	return nil
}

func exitCode(err error) int {
	if errors.Is(err, source.ErrUnreadable) || errors.Is(err, render.ErrUnwritable) {
		return exitIO
	}
	return exitConfig
}

func main() {
	opts, err := ParseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if errors.Is(err, errUsage) {
		os.Exit(exitConfig)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "can not parse flags:", err)
		os.Exit(exitConfig)
	}

	runID := uuid.NewString()
	setupLogging(opts.Verbose, runID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = process(ctx, opts, runID, os.Stdin, os.Stdout)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error while processing:", err)
		os.Exit(exitCode(err))
	}
}
