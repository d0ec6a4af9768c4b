package service

import (
	"context"

	"ecobazaarx/internal/domain"
	"ecobazaarx/internal/repository"
)

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalSellers   int `json:"totalSellers"`
	TotalCustomers int `json:"totalCustomers"`
	TotalProducts  int `json:"totalProducts"`
	TotalOrders    int `json:"totalOrders"`
}

// SellerStats is the seller dashboard summary.
type SellerStats struct {
	TotalProducts int `json:"totalProducts"`
	TotalOrders   int `json:"totalOrders"`
	TotalReviews  int `json:"totalReviews"`
}

// UserService defines the interface for account administration and profiles
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	PendingUsers(ctx context.Context) ([]*domain.User, error)
	ListSellers(ctx context.Context) ([]*domain.User, error)
	ApproveUser(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
	Profile(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) error
	AdminStats(ctx context.Context) (*AdminStats, error)
	SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error)
}

type userService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	reviewRepo  repository.ReviewRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	reviewRepo repository.ReviewRepository,
) UserService {
	return &userService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) PendingUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByStatus(ctx, domain.StatusPending)
}

func (s *userService) ListSellers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByRole(ctx, domain.RoleSeller)
}

func (s *userService) ApproveUser(ctx context.Context, id int64) error {
	return s.userRepo.UpdateStatus(ctx, id, domain.StatusApproved)
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) Profile(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, name, email string) error {
	return s.userRepo.UpdateProfile(ctx, id, name, email)
}

// AdminStats assembles platform-wide counts for the admin dashboard
func (s *userService) AdminStats(ctx context.Context) (*AdminStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalSellers, err := s.userRepo.CountByRole(ctx, domain.RoleSeller)
	if err != nil {
		return nil, err
	}

	totalCustomers, err := s.userRepo.CountByRole(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalUsers:     totalUsers,
		TotalSellers:   totalSellers,
		TotalCustomers: totalCustomers,
		TotalProducts:  totalProducts,
		TotalOrders:    totalOrders,
	}, nil
}

// SellerStats assembles per-seller counts for the seller dashboard
func (s *userService) SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error) {
	totalProducts, err := s.productRepo.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.orderRepo.CountDistinctBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	totalReviews, err := s.reviewRepo.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return &SellerStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalReviews:  totalReviews,
	}, nil
}
