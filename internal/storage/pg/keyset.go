package pg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

const productColumns = "id, sku, name, description, price, currency, stock, rating, created_at"

// buildKeysetQuery renders a keyset page query for products.
// Only schema columns are interpolated; cursor values always travel as arguments.
func buildKeysetQuery(q pagination.Query) (string, []any) {
	col := q.Field.Column
	cmp, order := ">", "ASC"
	if q.Direction == pagination.Backward {
		cmp, order = "<", "DESC"
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM products")

	if q.After != nil {
		tieID, err := uuid.Parse(q.After.ID)
		switch {
		case col == "id":
			fmt.Fprintf(&sb, " WHERE id %s $1", cmp)
			args = append(args, q.After.Value)
		case err == nil:
			fmt.Fprintf(&sb, " WHERE (%s, id) %s ($1, $2)", col, cmp)
			args = append(args, q.After.Value, tieID)
		default:
			fmt.Fprintf(&sb, " WHERE %s %s $1", col, cmp)
			args = append(args, q.After.Value)
		}
	}

	if col == "id" {
		fmt.Fprintf(&sb, " ORDER BY id %s", order)
	} else {
		fmt.Fprintf(&sb, " ORDER BY %s %s, id %s", col, order, order)
	}

	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	return sb.String(), args
}
