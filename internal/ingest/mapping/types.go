package mapping

import (
	"fmt"
	"time"
)

// ProductMapping maps the columns of an import file onto Product fields
type ProductMapping struct {
	Kind          string         `json:"kind" yaml:"kind"`
	Version       string         `json:"version" yaml:"version"`
	Metadata      Metadata       `json:"metadata" yaml:"metadata"`
	Dataset       string         `json:"dataset" yaml:"dataset"`
	FieldMappings []FieldMapping `json:"fieldMappings" yaml:"fieldMappings"`
	// DateFormat is the Go layout for datetime columns
	DateFormat string `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
}

type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type FieldMapping struct {
	Source     string `json:"source" yaml:"source"`
	SourceType string `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
	Target     string `json:"target" yaml:"target"`
	Required   bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

func (pm *ProductMapping) Validate() error {
	if pm.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if pm.Version == "" {
		return fmt.Errorf("version is required")
	}
	if pm.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if pm.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if len(pm.FieldMappings) == 0 {
		return fmt.Errorf("at least one field mapping is required")
	}
	for i, fm := range pm.FieldMappings {
		if fm.Source == "" {
			return fmt.Errorf("fieldMappings[%d] must have source defined", i)
		}
		if fm.Target == "" {
			return fmt.Errorf("fieldMappings[%d] must have target defined", i)
		}
	}
	return nil
}

// Default maps the column names used by exported catalogs one to one
func Default() *ProductMapping {
	return &ProductMapping{
		Kind:     "ProductMapping",
		Version:  "v1",
		Metadata: Metadata{Name: "Storefront catalog"},
		Dataset:  "storefront",
		FieldMappings: []FieldMapping{
			{Source: "id", SourceType: "uuid", Target: "ID"},
			{Source: "sku", SourceType: "string", Target: "SKU", Required: true},
			{Source: "name", SourceType: "string", Target: "Name", Required: true},
			{Source: "description", SourceType: "string", Target: "Description"},
			{Source: "price", SourceType: "int", Target: "Price", Required: true},
			{Source: "currency", SourceType: "string", Target: "Currency"},
			{Source: "stock", SourceType: "int", Target: "Stock"},
			{Source: "rating", SourceType: "float", Target: "Rating"},
			{Source: "created_at", SourceType: "datetime", Target: "CreatedAt"},
		},
		DateFormat: time.RFC3339Nano,
	}
}

type MappingError struct {
	Message string `json:"message"`
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping error: %s", e.Message)
}
