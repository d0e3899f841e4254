package reader

import "context"

// Reader returns every record of a source as column -> raw value
type Reader interface {
	Read() ([]map[string]string, error)
}

type ParallelReaderResult struct {
	Record map[string]string
	Err    error
}

// RawParallelReader streams records; the channel is closed once the source is drained
type RawParallelReader interface {
	ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error)
}
