package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/storage"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

type Catalog struct {
	db     *pgxpool.Pool
	schema *pagination.Schema
}

func NewCatalog(pool *ConnectionPool) (*Catalog, error) {
	return &Catalog{
		db:     pool.conn,
		schema: storage.ProductSchema(nil),
	}, nil
}

func (c *Catalog) Schema() *pagination.Schema {
	return c.schema
}

func (c *Catalog) Position(p domain.Product, f pagination.Field) pagination.Position {
	return domain.ProductPosition(p, f)
}

func (c *Catalog) Fetch(ctx context.Context, q pagination.Query) ([]domain.Product, error) {
	sql, args := buildKeysetQuery(q)
	slog.Debug("Executing pg keyset page query", "field", q.Field.Name, "direction", q.Direction, "has_cursor", q.After != nil, "limit", q.Limit)

	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute page query: %w", err)
	}

	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, nil
}

func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	rows, err := c.db.Query(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrProductNotFound(id)
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

func (c *Catalog) Save(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	product.Normalize(time.Now())

	cmd := `
        INSERT INTO products (id, sku, name, description, price, currency, stock, rating, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            sku = EXCLUDED.sku,
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            price = EXCLUDED.price,
            currency = EXCLUDED.currency,
            stock = EXCLUDED.stock,
            rating = EXCLUDED.rating,
            created_at = EXCLUDED.created_at
        RETURNING id;
    `
	var id uuid.UUID
	err := c.db.QueryRow(
		ctx,
		cmd,
		product.ID,
		product.SKU,
		product.Name,
		product.Description,
		product.Price,
		product.Currency,
		product.Stock,
		product.Rating,
		product.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert product: %w", mapWriteError(err))
	}

	return id, nil
}

// SaveBulk copies products into a transaction-scoped staging table and upserts
// them from there, so re-importing existing ids replaces them like Save does.
// When an id repeats within products the last occurrence wins.
func (c *Catalog) SaveBulk(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	now := time.Now()
	latest := make(map[uuid.UUID]int, len(products))
	deduped := make([]domain.Product, 0, len(products))
	for _, p := range products {
		p.Normalize(now)
		if i, ok := latest[p.ID]; ok {
			deduped[i] = p
			continue
		}
		latest[p.ID] = len(deduped)
		deduped = append(deduped, p)
	}

	rows := make([][]any, len(deduped))
	for i, p := range deduped {
		rows[i] = []any{
			p.ID,
			p.SKU,
			p.Name,
			p.Description,
			p.Price,
			p.Currency,
			p.Stock,
			p.Rating,
			p.CreatedAt,
		}
	}

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin bulk transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "CREATE TEMP TABLE products_staging (LIKE products INCLUDING DEFAULTS) ON COMMIT DROP"); err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"products_staging"},
		[]string{"id", "sku", "name", "description", "price", "currency", "stock", "rating", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy products: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO products (`+productColumns+`)
        SELECT `+productColumns+` FROM products_staging
        ON CONFLICT (id) DO UPDATE SET
            sku = EXCLUDED.sku,
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            price = EXCLUDED.price,
            currency = EXCLUDED.currency,
            stock = EXCLUDED.stock,
            rating = EXCLUDED.rating,
            created_at = EXCLUDED.created_at
    `)
	if err != nil {
		return fmt.Errorf("failed to upsert staged products: %w", mapWriteError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk upsert: %w", err)
	}

	slog.Info("Bulk upserted products", "count", n)
	return nil
}

const uniqueViolation = "23505"

// mapWriteError turns unique violations into conflict errors
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.NewConflict(fmt.Sprintf("product conflicts with an existing one (%s)", pgErr.ConstraintName), err)
	}
	return err
}

func scanProduct(row pgx.CollectableRow) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.Stock,
		&p.Rating,
		&p.CreatedAt,
	)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}

var _ storage.Catalog = (*Catalog)(nil)
