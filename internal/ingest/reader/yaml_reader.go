package reader

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLReader reads a catalog document of the form
//
//	products:
//	  - sku: MUG-1
//	    price: 1299
type YAMLReader struct {
	reader io.Reader
}

func NewYAMLReader(reader io.Reader) *YAMLReader {
	return &YAMLReader{
		reader: reader,
	}
}

type yamlCatalog struct {
	Products []map[string]any `yaml:"products"`
}

func (yr *YAMLReader) Read() ([]map[string]string, error) {
	var doc yamlCatalog
	if err := yaml.NewDecoder(yr.reader).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode yaml catalog: %w", err)
	}

	records := make([]map[string]string, 0, len(doc.Products))
	for _, p := range doc.Products {
		record := make(map[string]string, len(p))
		for k, v := range p {
			record[k] = scalarString(v)
		}
		records = append(records, record)
	}
	return records, nil
}

// ReadParallel decodes the whole document and streams its records.
// A YAML document cannot be split safely, so workerCount is ignored.
func (yr *YAMLReader) ReadParallel(ctx context.Context, _ int) (<-chan ParallelReaderResult, error) {
	records, err := yr.Read()
	if err != nil {
		return nil, err
	}

	out := make(chan ParallelReaderResult)
	go func() {
		defer close(out)
		for _, r := range records {
			select {
			case out <- ParallelReaderResult{Record: r}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
