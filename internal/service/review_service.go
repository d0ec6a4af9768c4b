package service

import (
	"context"
	"fmt"
	"time"

	"ecobazaarx/internal/domain"
	"ecobazaarx/internal/repository"
)

// ReviewService defines the interface for review business logic
type ReviewService interface {
	Add(ctx context.Context, customerID, productID int64, rating int, comment string) (*domain.Review, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Review, error)
	// ReplyAsSeller attaches a reply when the reviewed product belongs to
	// the seller.
	ReplyAsSeller(ctx context.Context, reviewID, sellerID int64, reply string) error
	// ReplyAsAdmin attaches a reply to any review.
	ReplyAsAdmin(ctx context.Context, reviewID int64, reply string) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Add creates a review after confirming the product exists
func (s *reviewService) Add(ctx context.Context, customerID, productID int64, rating int, comment string) (*domain.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}

	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	review.ID = id

	return review, nil
}

func (s *reviewService) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error) {
	return s.reviewRepo.ListByCustomer(ctx, customerID)
}

func (s *reviewService) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Review, error) {
	return s.reviewRepo.ListBySeller(ctx, sellerID)
}

func (s *reviewService) ReplyAsSeller(ctx context.Context, reviewID, sellerID int64, reply string) error {
	return s.reviewRepo.ReplyForSeller(ctx, reviewID, sellerID, reply)
}

func (s *reviewService) ReplyAsAdmin(ctx context.Context, reviewID int64, reply string) error {
	return s.reviewRepo.Reply(ctx, reviewID, reply)
}
