package reader

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"sync"
)

type CSVReader struct {
	reader io.Reader
}

func NewCSVReader(reader io.Reader) *CSVReader {
	return &CSVReader{
		reader: reader,
	}
}

func (cr *CSVReader) Read() ([]map[string]string, error) {
	csvReader := csv.NewReader(cr.reader)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, err
	}

	var records []map[string]string
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(map[string]string, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}

// ReadParallel converts rows to records on workerCount goroutines.
// Rows whose width differs from the header are reported as errors.
func (cr *CSVReader) ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error) {
	out := make(chan ParallelReaderResult)
	csvReader := csv.NewReader(cr.reader)
	// width is checked per row by the workers
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, err
	}

	jobs := make(chan []string, workerCount*2)
	var wg sync.WaitGroup

	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case row, ok := <-jobs:
					if !ok {
						return
					}
					if len(row) != len(headers) {
						select {
						case out <- ParallelReaderResult{Err: io.ErrUnexpectedEOF}:
						case <-ctx.Done():
						}
						continue
					}
					record := make(map[string]string, len(headers))
					for i, h := range headers {
						record[h] = row[i]
					}
					select {
					case out <- ParallelReaderResult{Record: record}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for {
			row, err := csvReader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				slog.Error("Error reading CSV row", "error", err)
				select {
				case out <- ParallelReaderResult{Err: err}:
					continue
				case <-ctx.Done():
					slog.Info("Context cancelled, stopping CSV read...")
					return
				}
			}
			select {
			case jobs <- row:
			case <-ctx.Done():
				slog.Info("Context cancelled, stopping CSV read...")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}
