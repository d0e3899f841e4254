package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/storage"
)

const defaultBatchSize = 500

type BulkOptions struct {
	Enabled bool
	Size    int
}

type PipelineConfig struct {
	Name string
	Bulk *BulkOptions
}

// Stats counts the outcome of one pipeline run
type Stats struct {
	Processed int
	Failed    int
	Batches   int
}

// Pipeline moves collected products into a storer, one by one or in batches.
// Records that fail to read, map or validate are counted and skipped.
type Pipeline struct {
	collector Collector[domain.Product]
	storer    storage.Storer
	config    *PipelineConfig
	now       func() time.Time
	stats     Stats
}

type PipelineOption func(pipeline *Pipeline)

func WithBulk(size int) PipelineOption {
	return func(pipeline *Pipeline) {
		if size < 1 {
			size = defaultBatchSize
		}
		pipeline.config.Bulk = &BulkOptions{Enabled: true, Size: size}
	}
}

func WithName(name string) PipelineOption {
	return func(pipeline *Pipeline) {
		pipeline.config.Name = name
	}
}

func NewPipeline(c Collector[domain.Product], storer storage.Storer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		collector: c,
		storer:    storer,
		config: &PipelineConfig{
			Name: "catalog-import",
			Bulk: &BulkOptions{
				Enabled: false,
				Size:    defaultBatchSize,
			},
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Pipeline) Stats() Stats {
	return p.stats
}

func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.stats = Stats{}
	slog.Info("Starting pipeline run",
		"pipeline", p.config.Name,
		"bulk_enabled", p.config.Bulk.Enabled,
		"batch_size", p.config.Bulk.Size,
	)

	results, err := p.collector.Collect(ctx)
	if err != nil {
		slog.Error("Error collecting products", "error", err, "pipeline", p.config.Name)
		return err
	}

	var runErr error
	if p.config.Bulk.Enabled {
		runErr = p.processBatch(ctx, results)
	} else {
		runErr = p.processBasic(ctx, results)
	}

	slog.Info("Pipeline run completed",
		"pipeline", p.config.Name,
		"duration", time.Since(start),
		"processed", p.stats.Processed,
		"failed", p.stats.Failed,
		"batches", p.stats.Batches,
		"error", runErr,
	)

	return runErr
}

// accept normalizes and validates a collected product
func (p *Pipeline) accept(res Result[domain.Product]) (domain.Product, bool) {
	if res.Err != nil {
		slog.Error("Error collecting product", "error", res.Err, "pipeline", p.config.Name)
		p.stats.Failed++
		return domain.Product{}, false
	}

	product := res.Result
	product.Normalize(p.now())
	if err := product.Validate(); err != nil {
		slog.Warn("Skipping invalid product", "error", err, "sku", product.SKU, "pipeline", p.config.Name)
		p.stats.Failed++
		return domain.Product{}, false
	}
	return product, true
}

func (p *Pipeline) processBasic(ctx context.Context, results <-chan Result[domain.Product]) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return ctx.Err()
			}

			product, ok := p.accept(res)
			if !ok {
				continue
			}

			if id, err := p.storer.Save(ctx, product); err != nil {
				slog.Error("Error saving product", "error", err, "sku", product.SKU, "pipeline", p.config.Name)
				p.stats.Failed++
			} else {
				slog.Debug("Product saved", "id", id, "sku", product.SKU)
				p.stats.Processed++
			}
		}
	}
}

func (p *Pipeline) processBatch(ctx context.Context, results <-chan Result[domain.Product]) error {
	batch := make([]domain.Product, 0, p.config.Bulk.Size)

	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := p.storer.SaveBulk(ctx, batch); err != nil {
			slog.Error("Error saving product batch",
				"error", err,
				"count", len(batch),
				"pipeline", p.config.Name,
			)
			p.stats.Failed += len(batch)
		} else {
			p.stats.Processed += len(batch)
			p.stats.Batches++
			slog.Info("Product batch saved",
				"count", len(batch),
				"batch", p.stats.Batches,
				"pipeline", p.config.Name,
			)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Pipeline context cancelled",
				"pipeline", p.config.Name,
				"pending_batch", len(batch),
			)
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				// the collector also stops on cancellation
				if err := ctx.Err(); err != nil {
					return err
				}
				flush(ctx)
				return nil
			}

			product, ok := p.accept(res)
			if !ok {
				continue
			}

			batch = append(batch, product)
			if len(batch) >= p.config.Bulk.Size {
				flush(ctx)
			}
		}
	}
}
