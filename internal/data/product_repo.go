// Package data implements PostgreSQL repositories for the storefront catalog.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ayabeauty/storefront/internal/data/pgxutil"
	"github.com/ayabeauty/storefront/internal/domain/model"
	apperrors "github.com/ayabeauty/storefront/internal/errors"
	"github.com/ayabeauty/storefront/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = apperrors.NotFound("product not found")

var _ ports.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id::text AS id, name, price, description, category, subcategory,
	image_url, image_public_id, created_at, updated_at`

// ProductRepo provides database operations for catalog products.
type ProductRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProductRepo creates a ProductRepo using the system clock.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewProductRepoWithTimeProvider creates a ProductRepo with a custom TimeProvider (useful for testing).
func NewProductRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProductRepo {
	return &ProductRepo{DB: db, timeProvider: tp}
}

// Create inserts a validated product and returns the stored row.
func (r *ProductRepo) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, apperrors.Validation("create product request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	now := r.timeProvider.Now()
	p, err := pgxutil.QueryOne[model.Product](ctx, r.DB, `
		INSERT INTO products (name, price, description, category, subcategory,
		                      image_url, image_public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+productColumns,
		req.Name, req.Price, req.Description, req.Category, req.Subcategory,
		req.ImageURL, req.ImagePublicID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", apperrors.MapDBError(err))
	}
	return &p, nil
}

// GetByID retrieves a product by its ID. Malformed IDs are reported as not found.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	p, err := pgxutil.QueryOne[model.Product](ctx, r.DB,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", apperrors.MapDBError(err))
	}
	return &p, nil
}

// GetByIDs returns the existing products among ids, preserving the order of ids.
// Unknown, malformed and duplicate ids are skipped.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Product, error) {
	valid := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		key := u.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		valid = append(valid, key)
	}
	if len(valid) == 0 {
		return []*model.Product{}, nil
	}

	rows, err := pgxutil.QueryAll[model.Product](ctx, r.DB,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by IDs: %w", apperrors.MapDBError(err))
	}

	byID := make(map[string]*model.Product, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	out := make([]*model.Product, 0, len(rows))
	for _, id := range valid {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// List retrieves products matching filter, newest first.
func (r *ProductRepo) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	filter.Normalize()
	where, args := buildProductWhere(filter)
	args = append(args, filter.Limit, filter.Offset)

	q := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := pgxutil.QueryAll[model.Product](ctx, r.DB, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", apperrors.MapDBError(err))
	}
	return toPointers(rows), nil
}

// ListRelated returns up to limit newest products in category other than excludeID.
func (r *ProductRepo) ListRelated(
	ctx context.Context,
	category, excludeID string,
	limit int,
) ([]*model.Product, error) {
	if limit <= 0 {
		limit = model.RelatedLimit
	}
	rows, err := pgxutil.QueryAll[model.Product](ctx, r.DB, `
		SELECT `+productColumns+`
		FROM products
		WHERE category = $1 AND id::text <> $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`, category, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", apperrors.MapDBError(err))
	}
	return toPointers(rows), nil
}

// Update applies the non-nil fields of req and returns the updated row.
func (r *ProductRepo) Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}

	setParts, args := buildProductSet(req)
	args = append(args, r.timeProvider.Now())
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	q := "UPDATE products SET " + strings.Join(setParts, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + productColumns

	p, err := pgxutil.QueryOne[model.Product](ctx, r.DB, q, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", apperrors.MapDBError(err))
	}
	return &p, nil
}

// Delete deletes a product by its ID and reports whether a row was removed.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", apperrors.MapDBError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// --- helpers ---

func buildProductWhere(f model.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Subcategory != "" {
		args = append(args, f.Subcategory)
		conds = append(conds, fmt.Sprintf("subcategory = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d OR subcategory ILIKE $%d)", n, n, n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildProductSet(req model.UpdateProductRequest) ([]string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(col string, v any) {
		args = append(args, v)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Name != nil {
		add("name", strings.TrimSpace(*req.Name))
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.Description != nil {
		add("description", strings.TrimSpace(*req.Description))
	}
	if req.Category != nil {
		add("category", strings.TrimSpace(*req.Category))
	}
	if req.Subcategory != nil {
		add("subcategory", strings.TrimSpace(*req.Subcategory))
	}
	if req.ImageURL != nil {
		add("image_url", strings.TrimSpace(*req.ImageURL))
	}
	if req.ImagePublicID != nil {
		add("image_public_id", strings.TrimSpace(*req.ImagePublicID))
	}
	return setParts, args
}

// escapeLike escapes LIKE metacharacters so the search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toPointers(rows []model.Product) []*model.Product {
	out := make([]*model.Product, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}
