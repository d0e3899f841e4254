package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/storage"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

// tieBreakMax sorts after every product id in a keyword field
const tieBreakMax = "~"

type Catalog struct {
	client    *elasticsearch.TypedClient
	indexName string
	schema    *pagination.Schema
}

func NewCatalog(ctx context.Context, config ClientConfig) (*Catalog, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	c := &Catalog{
		client:    client,
		indexName: config.IndexName,
		schema:    storage.ProductSchema(map[string]string{"name": "name.keyword"}),
	}

	if err := c.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return c, nil
}

func (c *Catalog) Schema() *pagination.Schema {
	return c.schema
}

func (c *Catalog) Position(p domain.Product, f pagination.Field) pagination.Position {
	return domain.ProductPosition(p, f)
}

// Fetch pages with search_after over (field, id)
func (c *Catalog) Fetch(ctx context.Context, q pagination.Query) ([]domain.Product, error) {
	slog.Debug("Executing es page query", "field", q.Field.Name, "direction", q.Direction, "has_cursor", q.After != nil, "limit", q.Limit)

	order := sortorder.Asc
	if q.Direction == pagination.Backward {
		order = sortorder.Desc
	}

	req := c.client.Search().
		Index(c.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Size(q.Limit)

	primary := &types.SortOptions{SortOptions: map[string]types.FieldSort{q.Field.Column: {Order: &order}}}
	if q.Field.Column == "id" {
		req = req.Sort(primary)
	} else {
		req = req.Sort(primary, &types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &order}}})
	}

	if q.After != nil {
		req = req.SearchAfter(searchAfter(q)...)
	}

	res, err := req.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch page query failed", "error", err, "field", q.Field.Name)
		return nil, fmt.Errorf("failed to execute page query: %w", err)
	}

	products := make([]domain.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// searchAfter renders a position as sort values. A position without a
// tie-break id uses a sentinel so that only the value decides.
func searchAfter(q pagination.Query) []types.FieldValue {
	v := sortValue(q.After.Value)
	if q.Field.Column == "id" {
		return []types.FieldValue{v}
	}

	tie := q.After.ID
	if tie == "" && q.Direction == pagination.Forward {
		tie = tieBreakMax
	}
	return []types.FieldValue{v, tie}
}

func sortValue(v any) types.FieldValue {
	switch val := v.(type) {
	case time.Time:
		return val.UnixMilli()
	case uuid.UUID:
		return val.String()
	default:
		return val
	}
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	res, err := c.client.Get(c.indexName, id.String()).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if !res.Found {
		return nil, storage.ErrProductNotFound(id)
	}

	var doc Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Catalog) Save(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	product.Normalize(time.Now())
	doc := toDocument(product)

	res, err := c.client.Index(c.indexName).Id(doc.ID).Document(doc).Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to index document: %w", err)
	}

	slog.Info("Product indexed", "id", doc.ID, "index", c.indexName, "result", res.Result)
	return product.ID, nil
}

func (c *Catalog) SaveBulk(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         c.indexName,
		Client:        c.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	now := time.Now()
	for _, p := range products {
		p.Normalize(now)
		doc := toDocument(p)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("Failed to marshal document", "error", err, "id", doc.ID)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(docBytes),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					slog.Error("Bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("Bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			slog.Error("Failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("Bulk indexing completed",
		"indexed", stats.NumIndexed,
		"failed", stats.NumFailed,
		"total", len(products),
		"index", c.indexName)

	if stats.NumFailed > 0 {
		return fmt.Errorf("failed to index %d out of %d products", stats.NumFailed, len(products))
	}
	return nil
}

func (c *Catalog) EnsureIndex(ctx context.Context) error {
	exists, err := c.client.Indices.Exists(c.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", c.indexName)
		return nil
	}

	name := types.NewTextProperty()
	name.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":          types.NewKeywordProperty(),
			"sku":         types.NewKeywordProperty(),
			"name":        name,
			"description": types.NewTextProperty(),
			"price":       types.NewLongNumberProperty(),
			"currency":    types.NewKeywordProperty(),
			"stock":       types.NewLongNumberProperty(),
			"rating":      types.NewDoubleNumberProperty(),
			"created_at":  types.NewDateProperty(),
			"indexed_at":  types.NewDateProperty(),
		},
	}

	res, err := c.client.Indices.Create(c.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created", "index", c.indexName)
	return nil
}

var _ storage.Catalog = (*Catalog)(nil)
