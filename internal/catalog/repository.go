// Package catalog is the in-process product catalog: a SQLite-backed
// repository with filtering, sorting and pagination, plus the admin CRUD the
// storefront console needs. It implements the same product API interface the
// remote HTTP client does, so composition picks one or the other.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/giasinguyen/TrendShirts/internal/client"
	"github.com/giasinguyen/TrendShirts/internal/domain"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products and cannot be deleted")
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the catalog database and brings the
// schema up to date. Pass ":memory:" for an ephemeral catalog.
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.image_url, p.category_id, c.name, p.created_at
`

func (r *Repository) GetProducts(ctx context.Context, opts client.FilterOptions) (*client.ProductPage, error) {
	where, args := buildProductFilter(opts)

	var total int
	countQuery := `SELECT COUNT(*) FROM products p JOIN categories c ON c.id = p.category_id` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	query := `SELECT` + productColumns + `FROM products p JOIN categories c ON c.id = p.category_id` +
		where + orderClause(opts.Sort) + ` LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &client.ProductPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT` + productColumns + `FROM products p JOIN categories c ON c.id = p.category_id WHERE p.id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, client.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, image_url, category_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price.String(), p.ImageURL, p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return r.GetProductByID(ctx, p.ID)
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, image_url = ?, category_id = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price.String(), p.ImageURL, p.CategoryID, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, client.ErrProductNotFound
	}
	return r.GetProductByID(ctx, p.ID)
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return client.ErrProductNotFound
	}
	return nil
}

func (r *Repository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, description) VALUES (?, ?) RETURNING id`,
		c.Name, c.Description,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		c.Name, c.Description, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = ?`, id,
	).Scan(&count); err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func buildProductFilter(opts client.FilterOptions) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if opts.Category != "" {
		clauses = append(clauses, "c.name = ?")
		args = append(args, opts.Category)
	}
	if opts.Search != "" {
		clauses = append(clauses, "(p.name LIKE ? OR p.description LIKE ?)")
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}
	if opts.MinPrice != nil {
		clauses = append(clauses, "CAST(p.price AS REAL) >= ?")
		args = append(args, opts.MinPrice.InexactFloat64())
	}
	if opts.MaxPrice != nil {
		clauses = append(clauses, "CAST(p.price AS REAL) <= ?")
		args = append(args, opts.MaxPrice.InexactFloat64())
	}

	if len(clauses) == 0 {
		return " ", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderClause(sortOpt string) string {
	switch sortOpt {
	case "price_asc":
		return " ORDER BY CAST(p.price AS REAL) ASC"
	case "price_desc":
		return " ORDER BY CAST(p.price AS REAL) DESC"
	case "name":
		return " ORDER BY p.name ASC"
	case "newest":
		return " ORDER BY p.created_at DESC, p.id DESC"
	default:
		return " ORDER BY p.id ASC"
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var price string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.ImageURL, &p.CategoryID, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	return &p, nil
}
