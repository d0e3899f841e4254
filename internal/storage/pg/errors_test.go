package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
)

func TestMapWriteError(t *testing.T) {
	t.Run("unique violation becomes conflict", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"}

		err := mapWriteError(fmt.Errorf("exec: %w", pgErr))

		var ce *apperr.ConflictError
		assert.ErrorAs(t, err, &ce)
		assert.Contains(t, ce.Error(), "products_sku_key")
		assert.ErrorIs(t, err, pgErr)
	})

	t.Run("other pg errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "products_price_check"}

		err := mapWriteError(pgErr)

		var ce *apperr.ConflictError
		assert.False(t, errors.As(err, &ce))
		assert.Same(t, pgErr, err)
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, mapWriteError(plain))
	})
}
