package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGSkinTypeRepo implements SkinTypeRepo using Postgres.
type PGSkinTypeRepo struct {
	DB *sql.DB
}

// FindByNameContains matches the name with ILIKE after escaping wildcards.
func (r *PGSkinTypeRepo) FindByNameContains(ctx context.Context, substr string) (SkinType, error) {
	const query = `
SELECT id, name
FROM skin_types
WHERE deleted_at IS NULL AND name ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY id
LIMIT 1`
	return r.scanOne(ctx, query, escapeLike(strings.TrimSpace(substr)))
}

// Any returns the first skin type by id.
func (r *PGSkinTypeRepo) Any(ctx context.Context) (SkinType, error) {
	const query = `
SELECT id, name
FROM skin_types
WHERE deleted_at IS NULL
ORDER BY id
LIMIT 1`
	return r.scanOne(ctx, query)
}

// IsEmpty reports whether the skin_types table has no live rows.
func (r *PGSkinTypeRepo) IsEmpty(ctx context.Context) (bool, error) {
	const query = `SELECT NOT EXISTS (SELECT 1 FROM skin_types WHERE deleted_at IS NULL)`
	var empty bool
	if err := r.DB.QueryRowContext(ctx, query).Scan(&empty); err != nil {
		return false, err
	}
	return empty, nil
}

// List returns all live skin types ordered by id.
func (r *PGSkinTypeRepo) List(ctx context.Context) ([]SkinType, error) {
	const query = `
SELECT id, name
FROM skin_types
WHERE deleted_at IS NULL
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkinType
	for rows.Next() {
		var st SkinType
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *PGSkinTypeRepo) scanOne(ctx context.Context, query string, args ...any) (SkinType, error) {
	var st SkinType
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SkinType{}, ErrNotFound
		}
		return SkinType{}, err
	}
	return st, nil
}

// PGProductRepo implements ProductRepo using Postgres.
type PGProductRepo struct {
	DB *sql.DB
}

// FindBySkinType selects up to limit products in a CTE and joins their
// category, brand and images. Rows are grouped back into products in id order.
func (r *PGProductRepo) FindBySkinType(ctx context.Context, skinTypeID string, limit int) ([]Product, error) {
	const query = `
WITH picked AS (
    SELECT p.id
    FROM products p
    JOIN product_skin_types pst ON pst.product_id = p.id
    WHERE pst.skin_type_id = $1 AND p.deleted_at IS NULL
    ORDER BY p.id
    LIMIT $2
)
SELECT p.id, p.name, p.description, p.price,
       COALESCE(c.id, ''), COALESCE(c.name, ''), COALESCE(b.id, ''), COALESCE(b.name, ''),
       i.url, i.is_thumbnail, i.sort_order
FROM picked
JOIN products p ON p.id = picked.id
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN brands b ON b.id = p.brand_id
LEFT JOIN product_images i ON i.product_id = p.id
ORDER BY p.id, i.sort_order`

	rows, err := r.DB.QueryContext(ctx, query, skinTypeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			p         Product
			imgURL    sql.NullString
			thumbnail sql.NullBool
			sortOrder sql.NullInt64
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price,
			&p.Category.ID, &p.Category.Name, &p.Brand.ID, &p.Brand.Name,
			&imgURL, &thumbnail, &sortOrder,
		); err != nil {
			return nil, err
		}
		pos, ok := index[p.ID]
		if !ok {
			pos = len(out)
			index[p.ID] = pos
			p.Images = []ProductImage{}
			out = append(out, p)
		}
		if imgURL.Valid {
			out[pos].Images = append(out[pos].Images, ProductImage{
				URL:         imgURL.String,
				IsThumbnail: thumbnail.Valid && thumbnail.Bool,
				SortOrder:   int(sortOrder.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var (
	_ SkinTypeRepo = (*PGSkinTypeRepo)(nil)
	_ ProductRepo  = (*PGProductRepo)(nil)
)
