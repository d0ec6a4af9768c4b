package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecobazaarx/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	// UpdateForSeller updates a product only when it belongs to sellerID.
	UpdateForSeller(ctx context.Context, product *domain.Product, sellerID int64) error
	Delete(ctx context.Context, id int64) error
	DeleteForSeller(ctx context.Context, id, sellerID int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Product, error)
	// FindPricingByIDs fetches price and carbon score for every distinct id
	// in one batched lookup. Missing ids are simply absent from the result.
	FindPricingByIDs(ctx context.Context, ids []int64) ([]domain.ProductPricing, error)
	Count(ctx context.Context) (int, error)
	CountBySeller(ctx context.Context, sellerID int64) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, category, price, carbon_score, eco_label, stock, seller_id, created_at`

// Create inserts a new product and returns the generated id
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (name, category, price, carbon_score, eco_label, stock, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Category,
		product.Price,
		product.CarbonScore,
		product.EcoLabel,
		product.Stock,
		product.SellerID,
		product.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// Update updates a product regardless of owner (admin path)
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, price = $4, carbon_score = $5,
		    eco_label = $6, stock = $7, seller_id = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Category,
		product.Price,
		product.CarbonScore,
		product.EcoLabel,
		product.Stock,
		product.SellerID,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return checkAffected(result, ErrProductNotFound)
}

// UpdateForSeller updates a product scoped to its owning seller
func (r *productRepository) UpdateForSeller(ctx context.Context, product *domain.Product, sellerID int64) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, price = $4, carbon_score = $5,
		    eco_label = $6, stock = $7
		WHERE id = $1 AND seller_id = $8
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Category,
		product.Price,
		product.CarbonScore,
		product.EcoLabel,
		product.Stock,
		sellerID,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return checkAffected(result, ErrProductNotFound)
}

// Delete removes a product regardless of owner (admin path)
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return checkAffected(result, ErrProductNotFound)
}

// DeleteForSeller removes a product scoped to its owning seller
func (r *productRepository) DeleteForSeller(ctx context.Context, id, sellerID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1 AND seller_id = $2`, id, sellerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return checkAffected(result, ErrProductNotFound)
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
		&product.CarbonScore,
		&product.EcoLabel,
		&product.Stock,
		&product.SellerID,
		&product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves all products
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)
	return r.queryProducts(ctx, query)
}

// ListBySeller retrieves all products owned by a seller
func (r *productRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE seller_id = $1 ORDER BY id`, productColumns)
	return r.queryProducts(ctx, query, sellerID)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Price,
			&product.CarbonScore,
			&product.EcoLabel,
			&product.Stock,
			&product.SellerID,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindPricingByIDs batch-fetches pricing for the given product ids
func (r *productRepository) FindPricingByIDs(ctx context.Context, ids []int64) ([]domain.ProductPricing, error) {
	query := `
		SELECT id, price, carbon_score
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product pricing: %w", err)
	}
	defer rows.Close()

	pricing := []domain.ProductPricing{}
	for rows.Next() {
		var p domain.ProductPricing
		if err := rows.Scan(&p.ID, &p.Price, &p.CarbonScore); err != nil {
			return nil, fmt.Errorf("failed to scan product pricing: %w", err)
		}
		pricing = append(pricing, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product pricing: %w", err)
	}

	return pricing, nil
}

// Count returns the total number of products
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountBySeller returns the number of products owned by a seller
func (r *productRepository) CountBySeller(ctx context.Context, sellerID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE seller_id = $1`, sellerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count seller products: %w", err)
	}
	return count, nil
}

func checkAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
