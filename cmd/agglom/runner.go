package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/agglom/agglom"
	"github.com/katalvlaran/agglom/codec"
	"github.com/katalvlaran/agglom/internal/config"
	"github.com/katalvlaran/agglom/internal/logging"
	"github.com/katalvlaran/agglom/internal/metrics"
	"github.com/katalvlaran/agglom/linkage"
	"github.com/katalvlaran/agglom/store"
)

// stdinName selects standard input as a matrix source (and stdout as -out).
const stdinName = "-"

// errOutputClash reports two inputs mapped to the same output file.
var errOutputClash = errors.New("output name collision")

// treeExt maps a tree format to its output file extension.
var treeExt = map[string]string{
	string(codec.FormatNewick):  ".nwk",
	string(codec.FormatJSON):    ".json",
	string(codec.FormatMsgpack): ".msgpack",
}

// runner owns everything one invocation shares across inputs.
type runner struct {
	cfg     *config.Config
	log     *zap.Logger
	link    linkage.Linkage
	store   store.Store // nil when caching is off
	metrics *metrics.Collector
	stdin   io.Reader
	stdout  io.Writer
}

// result is one input's rendered output, kept for ordered stdout writes.
type result struct {
	path string
	body []byte
}

func newRunner(cfg *config.Config, log *zap.Logger, stdin io.Reader, stdout io.Writer) (*runner, error) {
	link, err := linkage.ByName(cfg.Linkage)
	if err != nil {
		return nil, err
	}
	r := &runner{
		cfg:     cfg,
		log:     log.With(zap.String("run_id", uuid.NewString()), zap.String("linkage", link.Name)),
		link:    link,
		metrics: metrics.New(cfg.MetricsFile != ""),
		stdin:   stdin,
		stdout:  stdout,
	}
	if cfg.Store != "" {
		if r.store, err = openStore(cfg.Store, cfg.CacheSize, log); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// openStore opens the badger store at dir, fronted by an LRU unless
// cacheSize is 0. The badger handle is closed again if the LRU fails.
func openStore(dir string, cacheSize int, log *zap.Logger) (store.Store, error) {
	db, err := store.Open(dir, store.WithLogger(logging.Badger(log)))
	if err != nil {
		return nil, err
	}
	if cacheSize == 0 {
		return db, nil
	}
	cached, err := store.WithLRU(db, cacheSize)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Warn("close store", zap.Error(cerr))
		}

		return nil, err
	}

	return cached, nil
}

// Close releases the store.
func (r *runner) Close() {
	if r.store == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.log.Warn("close store", zap.Error(err))
	}
}

// Run processes files concurrently (bounded by cfg.Parallel). Stdout output
// is written in argument order once all inputs finished. Every failing input
// is logged; the first error is returned.
func (r *runner) Run(ctx context.Context, files []string) error {
	start := time.Now()
	r.log.Info("run started", zap.Int("inputs", len(files)), zap.Int("parallel", r.cfg.Parallel))

	dsts, err := r.outputPaths(files)
	if err != nil {
		return err
	}

	results := make([]result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Parallel)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			body, err := r.process(gctx, path, dsts[i])
			if err != nil {
				r.metrics.Failures.Inc()
				r.log.Error("input failed", zap.String("input", path), zap.Error(err))

				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = result{path: path, body: body}

			return nil
		})
	}
	err = g.Wait()

	if err == nil && r.cfg.Out == stdinName {
		w := bufio.NewWriter(r.stdout)
		for _, res := range results {
			if _, werr := w.Write(res.body); werr != nil {
				err = werr

				break
			}
		}
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}

	if r.cfg.MetricsFile != "" {
		if merr := r.metrics.WriteTextfile(r.cfg.MetricsFile); merr != nil {
			r.log.Warn("metrics export failed", zap.Error(merr))
		}
	}
	r.log.Info("run finished", zap.Duration("took", time.Since(start)), zap.Bool("ok", err == nil))

	return err
}

// outputPaths plans one output file per input in directory mode (empty
// strings for stdout). Two inputs sharing a base name are rejected before
// any work starts.
func (r *runner) outputPaths(files []string) ([]string, error) {
	if r.cfg.Out == stdinName {
		return make([]string, len(files)), nil
	}
	dsts := make([]string, len(files))
	owner := make(map[string]string, len(files))
	for i, path := range files {
		dst := filepath.Join(r.cfg.Out, outputBase(path)+r.outputExt())
		if prev, ok := owner[dst]; ok {
			return nil, fmt.Errorf("%s and %s both write %s: %w", prev, path, dst, errOutputClash)
		}
		owner[dst] = path
		dsts[i] = dst
	}

	return dsts, nil
}

// outputExt is the file extension of the rendered output.
func (r *runner) outputExt() string {
	if r.cfg.Cut > 0 {
		return ".clusters.tsv"
	}

	return treeExt[r.cfg.Format]
}

// process reads, builds (or fetches) and renders one input. The rendered
// bytes are returned for stdout mode and written to dst otherwise.
func (r *runner) process(ctx context.Context, path, dst string) ([]byte, error) {
	in, err := r.read(path)
	if err != nil {
		return nil, err
	}
	tree, err := r.tree(ctx, path, in)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if r.cfg.Cut > 0 {
		err = writeCut(&buf, tree, r.cfg.Cut)
	} else {
		err = codec.Write(&buf, tree, codec.Format(r.cfg.Format), r.cfg.Precision)
	}
	if err != nil {
		return nil, err
	}

	if r.cfg.Out == stdinName {
		return buf.Bytes(), nil
	}
	if err = os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	r.log.Debug("wrote output", zap.String("input", path), zap.String("output", dst))

	return nil, nil
}

// read decodes the matrix at path ("-" is stdin, which needs -input-format).
func (r *runner) read(path string) (*codec.Input, error) {
	format := codec.Format(r.cfg.InputFormat)
	if format == "" {
		if path == stdinName {
			return nil, errors.New("reading stdin requires -input-format")
		}
		var err error
		if format, err = codec.FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	if path == stdinName {
		return codec.Read(r.stdin, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return codec.Read(bufio.NewReader(f), format)
}

// tree serves the input from the store or builds and stores it.
func (r *runner) tree(ctx context.Context, path string, in *codec.Input) (*agglom.Tree, error) {
	outgroup, err := resolveOutgroup(r.cfg.Outgroup, in.Labels)
	if err != nil {
		return nil, err
	}

	var key uint64
	if r.store != nil {
		key, err = store.Fingerprint(in.Matrix, r.link.Name, in.Labels,
			"outgroup="+strconv.Itoa(outgroup),
			"clamp="+strconv.FormatBool(r.cfg.Clamp),
			"eps="+strconv.FormatFloat(r.cfg.Epsilon, 'g', -1, 64),
		)
		if err != nil {
			return nil, err
		}
		t, gerr := r.store.Get(ctx, key)
		switch {
		case gerr == nil:
			r.metrics.CacheHits.Inc()
			r.log.Debug("cache hit", zap.String("input", path), zap.String("key", store.Key(key)))

			return t, nil
		case !store.IsMiss(gerr):
			return nil, gerr
		}
		r.metrics.CacheMisses.Inc()
	}

	opts := []agglom.Option{
		agglom.WithEpsilon(r.cfg.Epsilon),
		agglom.WithOutgroup(outgroup),
		agglom.WithClampNegative(r.cfg.Clamp),
		agglom.WithObserver(logging.MergeObserver(r.log.With(zap.String("input", path)))),
	}
	if in.Labels != nil {
		opts = append(opts, agglom.WithLabels(in.Labels))
	}

	start := time.Now()
	t, err := agglom.Build(in.Matrix, r.link, opts...)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveBuild(r.link.Name, t.Leaves, time.Since(start))
	r.log.Info("tree built", zap.String("input", path), zap.Int("leaves", t.Leaves), zap.Duration("took", time.Since(start)))

	if r.store != nil {
		if err = r.store.Put(ctx, key, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// resolveOutgroup maps a label or a decimal index to a leaf id; "" is NoNode.
func resolveOutgroup(want string, labels []string) (int, error) {
	want = strings.TrimSpace(want)
	if want == "" {
		return agglom.NoNode, nil
	}
	for i, l := range labels {
		if l == want {
			return i, nil
		}
	}
	idx, err := strconv.Atoi(want)
	if err != nil {
		return agglom.NoNode, fmt.Errorf("outgroup %q: no such label: %w", want, agglom.ErrOutgroupRange)
	}

	return idx, nil
}

// writeCut prints "label<TAB>cluster" per leaf in leaf-id order.
func writeCut(w io.Writer, t *agglom.Tree, k int) error {
	labels, err := t.Cut(k)
	if err != nil {
		return err
	}
	for leaf, c := range labels {
		if _, err = fmt.Fprintf(w, "%s\t%d\n", t.Name(leaf), c); err != nil {
			return err
		}
	}

	return nil
}

// outputBase strips directory and extension from an input path.
func outputBase(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
