package ingest

import (
	"fmt"
	"reflect"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/ingest/mapping"
	"github.com/DjordjeVuckovic/storefront/internal/ingest/reader"
)

type Mapper interface {
	Map(record map[string]string) (domain.Product, error)
}

// ProductMapper fills Product fields from raw records as described by a mapping
type ProductMapper struct {
	cfg *mapping.ProductMapping
}

func NewProductMapper(cfg *mapping.ProductMapping) (*ProductMapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ProductMapper{cfg: cfg}, nil
}

// Map skips empty optional columns; an empty or unparsable required column fails the record
func (m *ProductMapper) Map(record map[string]string) (domain.Product, error) {
	product := domain.Product{}
	val := reflect.ValueOf(&product).Elem()

	for _, fm := range m.cfg.FieldMappings {
		sourceVal, ok := record[fm.Source]
		if !ok || sourceVal == "" {
			if fm.Required {
				return domain.Product{}, &mapping.MappingError{Message: "missing source field: " + fm.Source}
			}
			continue
		}

		err := reader.SetFlatField(val, fm.Target, sourceVal, fm.SourceType, m.cfg.DateFormat)
		if err != nil {
			if fm.Required {
				return domain.Product{}, fmt.Errorf("field %s: %w", fm.Source, err)
			}
			continue
		}
	}
	return product, nil
}
