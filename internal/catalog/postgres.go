package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the products table when absent.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			internal_reference VARCHAR(100),
			product_name VARCHAR(200),
			product_description TEXT,
			car_brands TEXT,
			car_models TEXT,
			quantity_on_hand INTEGER DEFAULT 0,
			sales_price DECIMAL(10, 2),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("catalog: ensure schema: %w", err)
	}
	return nil
}

// FindCandidates scans one column for a substring and splits multi-value
// cells into individual candidates. Query failures propagate; the
// resolver treats them as an empty candidate set.
func (p *Postgres) FindCandidates(ctx context.Context, field Field, substring string) ([]string, error) {
	var column string
	switch field {
	case FieldBrand:
		column = "car_brands"
	case FieldModel:
		column = "car_models"
	case FieldPart:
		column = "product_name"
	default:
		return nil, fmt.Errorf("catalog: unknown field %q", field)
	}

	var query string
	if field == FieldPart {
		// part names also live in descriptions
		query = `SELECT DISTINCT product_name FROM products
			WHERE product_name ILIKE $1 OR product_description ILIKE $1
			LIMIT 50`
	} else {
		query = fmt.Sprintf(`SELECT DISTINCT %s FROM products WHERE %s ILIKE $1 LIMIT 50`, column, column)
	}

	rows, err := p.db.QueryContext(ctx, query, "%"+substring+"%")
	if err != nil {
		return nil, fmt.Errorf("catalog: candidates %s: %w", field, err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (p *Postgres) FindModels(ctx context.Context, brand, substring string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT DISTINCT car_models FROM products
		WHERE car_brands ILIKE $1 AND car_models ILIKE $2
		LIMIT 50
	`, "%"+brand+"%", "%"+substring+"%")
	if err != nil {
		return nil, fmt.Errorf("catalog: models for %q: %w", brand, err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func collectCandidates(rows *sql.Rows) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for rows.Next() {
		var cell sql.NullString
		if err := rows.Scan(&cell); err != nil {
			return out, nil
		}
		if !cell.Valid {
			continue
		}
		for _, v := range SplitValues(cell.String) {
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out, rows.Err()
}

// FindProducts searches the catalog. A reference matches raw OR
// normalized (dashes and spaces stripped in the stored value too),
// otherwise brand/model/part narrow conjunctively.
func (p *Postgres) FindProducts(ctx context.Context, f Filter) ([]Entry, error) {
	query := "SELECT id, internal_reference, product_name, product_description, car_brands, car_models, quantity_on_hand, sales_price FROM products WHERE 1=1"
	var params []any
	n := 0
	arg := func(v any) string {
		n++
		params = append(params, v)
		return fmt.Sprintf("$%d", n)
	}

	if f.Reference != "" {
		clean := NormalizeReference(f.Reference)
		query += fmt.Sprintf(
			" AND (REPLACE(REPLACE(LOWER(internal_reference), ' ', ''), '-', '') LIKE %s OR internal_reference ILIKE %s)",
			arg("%"+clean+"%"), arg("%"+f.Reference+"%"),
		)
	} else {
		if f.Brand != "" {
			query += " AND car_brands ILIKE " + arg("%"+f.Brand+"%")
		}
		if f.Model != "" {
			query += " AND car_models ILIKE " + arg("%"+f.Model+"%")
		}
		if f.PartText != "" {
			ph := arg("%" + f.PartText + "%")
			query += fmt.Sprintf(" AND (product_name ILIKE %s OR product_description ILIKE %s OR internal_reference ILIKE %s)", ph, ph, ph)
		}
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", pageSize)

	rows, err := p.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("catalog: product search: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (p *Postgres) ListProducts(ctx context.Context, page, limit int, search string) ([]Entry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	where := ""
	var params []any
	if search != "" {
		where = " WHERE product_name ILIKE $1 OR internal_reference ILIKE $1 OR car_brands ILIKE $1 OR car_models ILIKE $1"
		params = append(params, "%"+search+"%")
	}

	var total int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, params...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("catalog: count products: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT id, internal_reference, product_name, product_description, car_brands, car_models, quantity_on_hand, sales_price FROM products%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		where, limit, offset,
	)
	rows, err := p.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	return entries, total, err
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var ref, name, desc, brands, models sql.NullString
		var qty sql.NullInt64
		var price sql.NullFloat64
		if err := rows.Scan(&e.ID, &ref, &name, &desc, &brands, &models, &qty, &price); err != nil {
			return out, err
		}
		e.Reference = ref.String
		e.Name = name.String
		e.Description = desc.String
		e.Brands = brands.String
		e.Models = models.String
		e.Quantity = int(qty.Int64)
		e.Price = price.Float64
		out = append(out, e)
	}
	return out, rows.Err()
}
