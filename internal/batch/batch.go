// Package batch decodes every LZ77 asset matching a glob in a file system,
// recording per-file failures instead of aborting the run.
package batch

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"path"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/woozymasta/lz77"
	"golang.org/x/sync/errgroup"
)

// DefaultTokenExtensions are the model-data extensions decoded as lz77.VariantToken
// when Config.Variant is unset.
var DefaultTokenExtensions = []string{".mdl", ".model", ".geo"}

// Config controls a batch run. The zero value decodes "**/*" with one worker per CPU.
type Config struct {
	Pattern         string        // doublestar pattern relative to the root; "" means "**/*".
	Workers         int           // Files decoded concurrently; 0 means GOMAXPROCS.
	Variant         lz77.Variant  // Forced variant; 0 selects by extension.
	TokenExtensions []string      // Lower-case extensions using the token variant; nil means DefaultTokenExtensions.
	CacheEntries    int           // Decoded outputs kept for duplicate inputs; 0 disables the cache.
	Options         *lz77.Options // Passed to lz77.Decompress.
	Logger          *slog.Logger  // nil discards.
}

// Sink receives each decoded buffer. The buffer may be shared with other
// results that had identical input and must not be modified.
type Sink func(name string, data []byte) error

// Result describes one matched file.
type Result struct {
	Name        string
	Variant     lz77.Variant
	Skipped     bool   // No LZ77 magic; the file was left alone.
	Size        int    // Decoded length.
	Digest      uint64 // xxhash of the decoded bytes.
	Cached      bool   // Output came from an earlier identical input.
	Diagnostics lz77.Diagnostics
	Err         error // Read, header or sink failure.
}

// Run decodes every file in fsys matching cfg.Pattern and returns results in
// lexical path order. Only a bad pattern or ctx cancellation make it fail;
// per-file problems are reported in Result.Err.
func Run(ctx context.Context, fsys fs.FS, cfg Config, sink Sink) ([]Result, error) {
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "**/*"
	}

	names, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := &runner{
		fsys:   fsys,
		cfg:    cfg,
		sink:   sink,
		cache:  newDecodeCache(cfg.CacheEntries),
		log:    log,
		tokens: cfg.TokenExtensions,
	}
	if r.tokens == nil {
		r.tokens = DefaultTokenExtensions
	}

	results := make([]Result, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.process(name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// runner carries the read-only configuration of one Run.
type runner struct {
	fsys   fs.FS
	cfg    Config
	sink   Sink
	cache  *decodeCache
	log    *slog.Logger
	tokens []string
}

// variantFor picks the token variant for model-data extensions and the flag variant otherwise.
func (r *runner) variantFor(name string) lz77.Variant {
	if r.cfg.Variant != 0 {
		return r.cfg.Variant
	}

	if slices.Contains(r.tokens, strings.ToLower(path.Ext(name))) {
		return lz77.VariantToken
	}

	return lz77.VariantFlag
}

func (r *runner) process(name string) Result {
	res := Result{Name: name, Variant: r.variantFor(name)}

	src, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		res.Err = err
		r.log.Error("read failed", "file", name, "err", err)
		return res
	}

	if !bytes.HasPrefix(src, []byte(lz77.Magic)) {
		res.Skipped = true
		r.log.Debug("not compressed", "file", name)
		return res
	}

	key := cacheKey{sum: xxhash.Sum64(src), size: len(src), variant: res.Variant}
	entry, hit := r.cache.get(key)
	if !hit {
		out, diag, err := lz77.Decompress(src, res.Variant, r.cfg.Options)
		if err != nil {
			res.Err = err
			r.log.Error("decode failed", "file", name, "variant", res.Variant, "err", err)
			return res
		}

		entry = cacheEntry{out: out, diag: diag}
		r.cache.add(key, entry)
	}

	res.Cached = hit
	res.Size = len(entry.out)
	res.Digest = xxhash.Sum64(entry.out)
	res.Diagnostics = entry.diag

	attrs := []any{
		"file", name,
		"variant", res.Variant,
		"size", res.Size,
		"cached", hit,
		"diag", entry.diag.String(),
	}
	if entry.diag.Clean() {
		r.log.Debug("decoded", attrs...)
	} else {
		r.log.Warn("decoded with anomalies", attrs...)
	}

	if r.sink != nil {
		if err := r.sink(name, entry.out); err != nil {
			res.Err = err
			r.log.Error("sink failed", "file", name, "err", err)
		}
	}

	return res
}

// Summary aggregates a batch run.
type Summary struct {
	Files     int
	Decoded   int
	Skipped   int
	Failed    int
	Cached    int
	Anomalies int // Decoded files whose diagnostics are not clean.
	Bytes     int64
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	var s Summary
	for _, res := range results {
		s.Files++
		switch {
		case res.Err != nil:
			s.Failed++
		case res.Skipped:
			s.Skipped++
		default:
			s.Decoded++
			s.Bytes += int64(res.Size)
			if res.Cached {
				s.Cached++
			}
			if !res.Diagnostics.Clean() {
				s.Anomalies++
			}
		}
	}

	return s
}
