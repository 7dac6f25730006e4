// Command lz77dump decodes every LZ77 asset under a directory and prints one
// line of diagnostics per file.
//
// Usage:
//
//	lz77dump [-root dir] [-glob pattern] [-variant ext|a|b] [-out dir] [flags]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/woozymasta/lz77"
	"github.com/woozymasta/lz77/internal/batch"
)

type config struct {
	root       string
	glob       string
	variant    string
	convention string
	workers    int
	cache      int
	out        string
	maxSize    int
	strict     bool
	verbose    bool
	tokenExts  string
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("lz77dump", flag.ContinueOnError)
	fs.StringVar(&c.root, "root", ".", "directory to scan")
	fs.StringVar(&c.glob, "glob", "**/*", "doublestar pattern relative to -root")
	fs.StringVar(&c.variant, "variant", "ext", "token variant: a (flag), b (token) or ext (by file extension)")
	fs.StringVar(&c.convention, "convention", "auto", "flag-variant bit order: auto, msb, lsb or flags")
	fs.IntVar(&c.workers, "j", 0, "files decoded concurrently (0 = one per CPU)")
	fs.IntVar(&c.cache, "cache", 256, "decoded outputs cached for duplicate inputs (0 = off)")
	fs.StringVar(&c.out, "out", "", "write decoded files as <out>/<path>.bin")
	fs.IntVar(&c.maxSize, "max-size", 256<<20, "reject headers declaring more bytes (0 = no limit)")
	fs.BoolVar(&c.strict, "strict", false, "exit non-zero when any file decodes with anomalies")
	fs.BoolVar(&c.verbose, "v", false, "log every file")
	fs.StringVar(&c.tokenExts, "token-ext", strings.Join(batch.DefaultTokenExtensions, ","), "extensions decoded with the token variant when -variant=ext")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	return c, nil
}

func (c config) batchConfig(log *slog.Logger) (batch.Config, error) {
	conv, err := lz77.ParseConvention(c.convention)
	if err != nil {
		return batch.Config{}, err
	}

	opts := lz77.DefaultOptions()
	opts.Convention = conv
	opts.MaxDecompressedSize = c.maxSize

	bc := batch.Config{
		Pattern:      c.glob,
		Workers:      c.workers,
		CacheEntries: c.cache,
		Options:      opts,
		Logger:       log,
	}

	if c.variant != "ext" {
		v, err := lz77.ParseVariant(c.variant)
		if err != nil {
			return batch.Config{}, err
		}
		bc.Variant = v
	}

	for _, ext := range strings.Split(c.tokenExts, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		bc.TokenExtensions = append(bc.TokenExtensions, ext)
	}
	if bc.TokenExtensions == nil {
		bc.TokenExtensions = []string{}
	}

	return bc, nil
}

// dirSink writes decoded buffers under dir, mirroring the input layout.
func dirSink(dir string) batch.Sink {
	return func(name string, data []byte) error {
		dst := filepath.Join(dir, filepath.FromSlash(name)+".bin")
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0o644)
	}
}

func run(ctx context.Context, args []string) (int, error) {
	c, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, nil
		}
		return 2, err
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	bc, err := c.batchConfig(log)
	if err != nil {
		return 2, err
	}

	var sink batch.Sink
	if c.out != "" {
		sink = dirSink(c.out)
	}

	results, err := batch.Run(ctx, os.DirFS(c.root), bc, sink)
	if err != nil {
		return 1, err
	}

	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Printf("%s\t%s\terror\t%v\n", res.Name, res.Variant, res.Err)
		case res.Skipped:
			fmt.Printf("%s\t-\tskipped\n", res.Name)
		default:
			fmt.Printf("%s\t%s\t%d\t%016x\t%s\n", res.Name, res.Variant, res.Size, res.Digest, res.Diagnostics)
		}
	}

	sum := batch.Summarize(results)
	log.Info("done",
		"files", sum.Files,
		"decoded", sum.Decoded,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"cached", sum.Cached,
		"anomalies", sum.Anomalies,
		"bytes", sum.Bytes,
	)

	if sum.Failed > 0 || (c.strict && sum.Anomalies > 0) {
		return 1, nil
	}

	return 0, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code, err := run(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "lz77dump:", err)
	}
	os.Exit(code)
}
