package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/rbtset/codec"
	"github.com/amp-labs/rbtset/envutil"
	rbterrors "github.com/amp-labs/rbtset/errors"
	"github.com/amp-labs/rbtset/fixture"
	"github.com/amp-labs/rbtset/logger"
	"github.com/amp-labs/rbtset/set"
	"github.com/amp-labs/rbtset/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const defaultWorkers = 4

var (
	ErrBuildFailed     = rbterrors.ErrBuildFailed
	ErrDuplicateOutput = rbterrors.ErrDuplicateOutput
	ErrInvalidConfig   = rbterrors.ErrInvalidConfig
)

type buildOptions struct {
	outDir   string
	compress string
	workers  int
}

// buildTotals is shared by every worker of one build.
type buildTotals struct {
	ok     atomic.Int64
	failed atomic.Int64
}

func newBuildCmd(a *app) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [flags] FILE...",
		Short: "Build a set from each fixture file and write it as DOT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			if err := opts.resolve(cmd); err != nil {
				return err
			}

			return runBuild(cmd.Context(), opts, files)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.outDir, "out", "o", ".", "directory to write DOT files to")
	flags.StringVarP(&opts.compress, "compress", "c", codec.None,
		"compress DOT output ("+strings.Join(codec.Names(), ", ")+"); defaults to RBTSET_COMPRESS")
	flags.IntVarP(&opts.workers, "workers", "w", defaultWorkers,
		"fixtures processed concurrently; defaults to RBTSET_WORKERS")

	return cmd
}

// resolve fills flags the user did not pass from the environment, which may
// have been extended by --env-file after the flags were declared.
func (o *buildOptions) resolve(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("compress") {
		name, err := envutil.OneOf("RBTSET_COMPRESS", codec.Names(), envutil.Default(codec.None)).Value()
		if err != nil {
			return err
		}

		o.compress = name
	}

	if !cmd.Flags().Changed("workers") {
		workers, err := envutil.Int("RBTSET_WORKERS", envutil.Default(defaultWorkers)).Value()
		if err != nil {
			return err
		}

		o.workers = workers
	}

	if o.workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, o.workers)
	}

	if _, err := codec.Extension(o.compress); err != nil {
		return err
	}

	return os.MkdirAll(o.outDir, 0o750)
}

func runBuild(ctx context.Context, opts buildOptions, files []string) error {
	jobs, err := planOutputs(opts, files)
	if err != nil {
		return err
	}

	log := logger.Get(ctx)
	reg := prometheus.NewRegistry()
	metrics := set.NewMetrics(reg, appName)

	var totals buildTotals

	pool := pond.NewPool(opts.workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()

	for _, job := range jobs {
		group.Submit(func() {
			if err := buildFile(ctx, opts.compress, job.path, job.out, metrics); err != nil {
				totals.failed.Inc()
				logger.Get(ctx).Error("fixture failed", "file", job.path, "error", err)

				return
			}

			totals.ok.Inc()
			logger.Get(ctx).Debug("wrote dot file", "file", job.path, "out", job.out)
		})
	}

	if err := group.Wait(); err != nil {
		log.Warn("build interrupted", "error", err)
	}

	// Files the pool never got to count as failed.
	skipped := int64(len(jobs)) - totals.ok.Load() - totals.failed.Load()
	totals.failed.Add(skipped)

	log.Info("build finished",
		"ok", totals.ok.Load(),
		"failed", totals.failed.Load(),
		"rotations", counterTotal(reg, appName+"_rotations_total"),
		"fixups", counterTotal(reg, appName+"_fixups_total"))

	if totals.failed.Load() > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBuildFailed, totals.failed.Load(), len(jobs))
	}

	return nil
}

// counterTotal sums every series of the named counter family.
func counterTotal(g prometheus.Gatherer, name string) float64 {
	families, err := g.Gather()
	if err != nil {
		return 0
	}

	total := 0.0

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}

		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}

	return total
}

type buildJob struct {
	path string
	out  string
}

// planOutputs resolves every file's output path up front. Two inputs that
// map to one output (dir1/a.yaml and dir2/a.yml) are rejected before any
// worker starts; the same input listed twice is built once.
func planOutputs(opts buildOptions, files []string) ([]buildJob, error) {
	jobs := make([]buildJob, 0, len(files))
	owners := make(map[string]string, len(files))

	for _, path := range files {
		out, err := outputPath(opts.outDir, path, opts.compress)
		if err != nil {
			return nil, err
		}

		if owner, taken := owners[out]; taken {
			if owner == path {
				continue
			}

			return nil, logger.AnnotateError(
				fmt.Errorf("%w: %s and %s both map to %s", ErrDuplicateOutput, owner, path, out),
				"out", out)
		}

		owners[out] = path
		jobs = append(jobs, buildJob{path: path, out: out})
	}

	return jobs, nil
}

// outputPath maps fixtures/a.yaml.gz to <out>/a.dot[.ext].
func outputPath(outDir, path, compress string) (string, error) {
	ext, err := codec.Extension(compress)
	if err != nil {
		return "", err
	}

	base := filepath.Base(path)
	if c := codec.FromPath(base); c != codec.None {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	base = strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(outDir, base+".dot"+ext), nil
}

func buildFile(ctx context.Context, compress, path, out string, metrics *set.Metrics) (err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "rbtset.build",
		trace.WithAttributes(attribute.String("rbtset.file", path)))

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	ctx = logger.With(ctx, "file", path)

	doc, err := fixture.LoadFile(path)
	if err != nil {
		return err
	}

	report, err := doc.Run(set.WithLogger(logger.Get(ctx)), set.WithMetrics(metrics))
	if err != nil {
		return logger.AnnotateError(err, "file", path)
	}

	if err := writeCompressed(out, compress, report.Dot); err != nil {
		return err
	}

	span.SetAttributes(
		attribute.String("rbtset.kind", report.Kind),
		attribute.Int("rbtset.len", report.Len),
		attribute.String("rbtset.fingerprint", report.Fingerprint),
	)

	logger.Get(ctx).Info("built set",
		"kind", report.Kind,
		"len", report.Len,
		"inserted", report.Inserted,
		"duplicates", report.Duplicates,
		"removed", report.Removed,
		"missing", report.Missing,
		"absorbed", report.Repack.Absorbed,
		"fingerprint", report.Fingerprint,
		"out", out)

	return nil
}

func writeCompressed(path, compress, content string) (err error) {
	f, err := os.Create(path) // #nosec G304 -- path is derived from the output directory
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w, err := codec.NewWriter(f, compress)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, content); err != nil {
		_ = w.Close()

		return fmt.Errorf("writing %s: %w", path, err)
	}

	return w.Close()
}
