package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecobazaarx/internal/domain"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (int64, error)
	// ListByCustomer returns a customer's reviews with product names,
	// newest first.
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error)
	// ListBySeller returns reviews of the seller's products.
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Review, error)
	// Reply sets the reply text on any review (admin path).
	Reply(ctx context.Context, reviewID int64, reply string) error
	// ReplyForSeller sets the reply only when the reviewed product belongs
	// to sellerID.
	ReplyForSeller(ctx context.Context, reviewID, sellerID int64, reply string) error
	CountBySeller(ctx context.Context, sellerID int64) (int, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review and returns the generated id
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) (int64, error) {
	query := `
		INSERT INTO reviews (customer_id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		review.CustomerID,
		review.ProductID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create review: %w", err)
	}

	return id, nil
}

// ListByCustomer retrieves a customer's reviews joined with product names
func (r *reviewRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.customer_id, r.product_id, r.rating, r.comment, r.reply, r.created_at, p.name
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		WHERE r.customer_id = $1
		ORDER BY r.id DESC
	`

	return r.queryReviews(ctx, query, customerID)
}

// ListBySeller retrieves reviews of a seller's products
func (r *reviewRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.customer_id, r.product_id, r.rating, r.comment, r.reply, r.created_at, p.name
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		WHERE p.seller_id = $1
		ORDER BY r.id DESC
	`

	return r.queryReviews(ctx, query, sellerID)
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID,
			&review.CustomerID,
			&review.ProductID,
			&review.Rating,
			&review.Comment,
			&review.Reply,
			&review.CreatedAt,
			&review.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Reply sets the reply text on a review
func (r *reviewRepository) Reply(ctx context.Context, reviewID int64, reply string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET reply = $2 WHERE id = $1`, reviewID, reply)
	if err != nil {
		return fmt.Errorf("failed to reply to review: %w", err)
	}

	return checkAffected(result, ErrReviewNotFound)
}

// ReplyForSeller sets the reply with a product-ownership check
func (r *reviewRepository) ReplyForSeller(ctx context.Context, reviewID, sellerID int64, reply string) error {
	query := `
		UPDATE reviews r
		SET reply = $1
		FROM products p
		WHERE r.id = $2 AND r.product_id = p.id AND p.seller_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, reply, reviewID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to reply to review: %w", err)
	}

	return checkAffected(result, ErrReviewNotFound)
}

// CountBySeller counts reviews of a seller's products
func (r *reviewRepository) CountBySeller(ctx context.Context, sellerID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		WHERE p.seller_id = $1
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, sellerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count seller reviews: %w", err)
	}
	return count, nil
}
