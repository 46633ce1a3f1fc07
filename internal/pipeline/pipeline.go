package pipeline

import (
	"context"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bibmap/internal/crossref"
	"bibmap/internal/engine"
	"bibmap/internal/metadata"
	"bibmap/internal/record"
)

// Options configures a Pipeline.
type Options struct {
	// Workers bounds the concurrent translations. Zero means GOMAXPROCS.
	Workers int

	// Logger receives batch summaries. Nil means no logging.
	Logger *zap.Logger

	// LabelPrefix is prepended to generated labels on export.
	LabelPrefix string

	// Required, when set, reports resolved entries that lack required
	// fields for their kind. Such entries are still translated.
	Required *metadata.RequiredTable
}

// Pipeline runs a translator over batches.
type Pipeline struct {
	tr   *engine.Translator
	opts Options
	log  *zap.Logger
}

// New creates a pipeline.
func New(tr *engine.Translator, opts Options) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Pipeline{tr: tr, opts: opts, log: log}
}

// Import translates source entries into target records. Crossref parents
// are looked up among the entries of the same batch.
func (p *Pipeline) Import(ctx context.Context, entries []record.Entry) ([]*record.Record, error) {
	recs := make([]*record.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.Record()
	}

	resolved := crossref.ResolveAll(recs)
	p.reportMissing(resolved)

	out, err := p.run(ctx, resolved, record.ToTarget, nil)
	if err != nil {
		return nil, err
	}

	p.log.Info("import finished", zap.Int("entries", len(entries)))

	return out, nil
}

// Export translates target records into source entries. Records whose
// translation carries no label get a generated one.
func (p *Pipeline) Export(ctx context.Context, recs []*record.Record) ([]record.Entry, error) {
	labeled := 0

	out, err := p.run(ctx, recs, record.ToSource, func(r *record.Record) {
		if r.Label == "" {
			r.Label = p.opts.LabelPrefix + uuid.NewString()
			labeled++
		}
	})
	if err != nil {
		return nil, err
	}

	entries := make([]record.Entry, len(out))
	for i, r := range out {
		entries[i] = record.EntryOf(r)
	}

	p.log.Info("export finished",
		zap.Int("records", len(recs)),
		zap.Int("generated_labels", labeled))

	return entries, nil
}

// run translates every record in direction d. finish runs sequentially on
// each result, in input order, after all workers are done.
func (p *Pipeline) run(ctx context.Context, recs []*record.Record, d record.Direction, finish func(*record.Record)) ([]*record.Record, error) {
	out := make([]*record.Record, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, rec := range recs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out[i] = p.tr.Translate(rec, d)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if finish != nil {
		for _, r := range out {
			finish(r)
		}
	}

	return out, nil
}

func (p *Pipeline) reportMissing(recs []*record.Record) {
	if p.opts.Required == nil {
		return
	}

	for _, r := range recs {
		missing := p.opts.Required.Missing(r)
		if len(missing) == 0 {
			continue
		}

		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = m.String()
		}

		p.log.Warn("entry lacks required fields",
			zap.String("label", r.Label),
			zap.String("type", r.Type),
			zap.String("missing", strings.Join(names, ", ")))
	}
}
