package ingest

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/ingest/reader"
)

const defaultReadWorkers = 10

type Result[T any] struct {
	Result T
	Err    error
}

type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}

// ProductCollector reads raw records and maps them to products
type ProductCollector struct {
	Reader  reader.RawParallelReader
	Mapper  Mapper
	Workers int
}

func NewProductCollector(r reader.RawParallelReader, mapper Mapper) *ProductCollector {
	return &ProductCollector{
		Reader:  r,
		Mapper:  mapper,
		Workers: defaultReadWorkers,
	}
}

func (pc *ProductCollector) Collect(ctx context.Context) (<-chan Result[domain.Product], error) {
	records, err := pc.Reader.ReadParallel(ctx, pc.Workers)
	if err != nil {
		return nil, err
	}

	out := make(chan Result[domain.Product])
	send := func(r Result[domain.Product]) bool {
		select {
		case out <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case res, ok := <-records:
				if !ok {
					slog.Debug("Reader channel closed, stopping collection")
					return
				}
				if res.Err != nil {
					if !send(Result[domain.Product]{Err: res.Err}) {
						return
					}
					continue
				}

				product, err := pc.Mapper.Map(res.Record)
				if err != nil {
					slog.Warn("Failed to map record to product", "error", err)
					if !send(Result[domain.Product]{Err: err}) {
						return
					}
					continue
				}

				if !send(Result[domain.Product]{Result: product}) {
					return
				}
			}
		}
	}()

	return out, nil
}
