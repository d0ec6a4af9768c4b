package service

import (
	"context"
	"fmt"
	"time"

	"ecobazaarx/internal/domain"
	"ecobazaarx/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	CarbonScore decimal.Decimal
	EcoLabel    string
	Stock       int
}

// ProductService defines the interface for product business logic
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	// Create adds a product owned by sellerID (the seller themselves, or a
	// seller chosen by an admin).
	Create(ctx context.Context, sellerID int64, in ProductInput) (*domain.Product, error)
	// UpdateAsAdmin edits any product and may reassign the owning seller.
	UpdateAsAdmin(ctx context.Context, id, sellerID int64, in ProductInput) (*domain.Product, error)
	// UpdateAsSeller edits a product only when the seller owns it.
	UpdateAsSeller(ctx context.Context, id, sellerID int64, in ProductInput) error
	DeleteAsAdmin(ctx context.Context, id int64) error
	DeleteAsSeller(ctx context.Context, id, sellerID int64) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *productService) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Product, error) {
	return s.productRepo.ListBySeller(ctx, sellerID)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, sellerID int64, in ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		CarbonScore: decimal.NullDecimal{Decimal: in.CarbonScore, Valid: true},
		EcoLabel:    in.EcoLabel,
		Stock:       in.Stock,
		SellerID:    sellerID,
		CreatedAt:   time.Now(),
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) UpdateAsAdmin(ctx context.Context, id, sellerID int64, in ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		CarbonScore: decimal.NullDecimal{Decimal: in.CarbonScore, Valid: true},
		EcoLabel:    in.EcoLabel,
		Stock:       in.Stock,
		SellerID:    sellerID,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) UpdateAsSeller(ctx context.Context, id, sellerID int64, in ProductInput) error {
	product := &domain.Product{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		CarbonScore: decimal.NullDecimal{Decimal: in.CarbonScore, Valid: true},
		EcoLabel:    in.EcoLabel,
		Stock:       in.Stock,
	}

	return s.productRepo.UpdateForSeller(ctx, product, sellerID)
}

func (s *productService) DeleteAsAdmin(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) DeleteAsSeller(ctx context.Context, id, sellerID int64) error {
	return s.productRepo.DeleteForSeller(ctx, id, sellerID)
}
