package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecobazaarx/internal/domain"
	"ecobazaarx/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart          = errors.New("products array is required")
	ErrProductsNotFound   = errors.New("some products not found")
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// CartItem is one requested (product, quantity) pair from the client cart.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// PlacedOrder is the outcome of a successful placement.
type PlacedOrder struct {
	OrderID     int64
	Total       decimal.Decimal
	CarbonTotal decimal.Decimal
}

// OrderService defines the interface for order business logic
type OrderService interface {
	PlaceOrder(ctx context.Context, customerID int64, items []CartItem) (*PlacedOrder, error)
	AllOrders(ctx context.Context) ([]OrderView, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]OrderView, error)
	SellerOrders(ctx context.Context, sellerID int64) ([]OrderView, error)
	UpdateStatusForSeller(ctx context.Context, orderID, sellerID int64, status domain.OrderStatus) error
	ApproveOrder(ctx context.Context, orderID int64) error
}

type orderService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) OrderService {
	return &orderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// PlaceOrder resolves authoritative pricing for the cart, computes totals,
// and persists the order header plus line items in one transaction. Any
// unknown product rejects the whole order; nothing is written.
//
// Stock is intentionally not decremented here.
func (s *orderService) PlaceOrder(ctx context.Context, customerID int64, items []CartItem) (*PlacedOrder, error) {
	lines, err := s.resolveLines(ctx, items)
	if err != nil {
		return nil, err
	}

	total, carbonTotal := orderTotals(lines)

	order := &domain.Order{
		CustomerID:  customerID,
		TotalAmount: total,
		TotalCarbon: carbonTotal,
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Now(),
	}

	orderID, err := s.orderRepo.Create(ctx, order, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &PlacedOrder{
		OrderID:     orderID,
		Total:       total,
		CarbonTotal: carbonTotal,
	}, nil
}

// resolveLines is the pricing resolver: it enriches each cart item with the
// product's current price and carbon score from a single batched lookup.
// A missing carbon score resolves to zero.
func (s *orderService) resolveLines(ctx context.Context, items []CartItem) ([]domain.OrderLine, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	pricing, err := s.productRepo.FindPricingByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product pricing: %w", err)
	}

	if len(pricing) != len(ids) {
		return nil, ErrProductsNotFound
	}

	byID := make(map[int64]domain.ProductPricing, len(pricing))
	for _, p := range pricing {
		byID[p.ID] = p
	}

	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, ErrProductsNotFound
		}

		carbon := decimal.Zero
		if p.CarbonScore.Valid {
			carbon = p.CarbonScore.Decimal
		}

		lines = append(lines, domain.OrderLine{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       p.Price,
			CarbonScore: carbon,
		})
	}

	return lines, nil
}

// orderTotals computes total price and total carbon for the resolved lines.
// Pure function: no I/O, no side effects.
func orderTotals(lines []domain.OrderLine) (total, carbonTotal decimal.Decimal) {
	total = decimal.Zero
	carbonTotal = decimal.Zero

	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		total = total.Add(line.Price.Mul(qty))
		carbonTotal = carbonTotal.Add(line.CarbonScore.Mul(qty))
	}

	return total, carbonTotal
}

// AllOrders returns every order for the admin view. Orders with no items
// are included and carry a single placeholder item.
func (s *orderService) AllOrders(ctx context.Context) ([]OrderView, error) {
	rows, err := s.orderRepo.AllRows(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateOrderRows(rows), nil
}

// CustomerOrders returns the customer's own orders. Itemless orders are
// omitted by the inner join.
func (s *orderService) CustomerOrders(ctx context.Context, customerID int64) ([]OrderView, error) {
	rows, err := s.orderRepo.CustomerRows(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return AggregateOrderRows(rows), nil
}

// SellerOrders returns orders containing at least one of the seller's
// products, restricted to those line items.
func (s *orderService) SellerOrders(ctx context.Context, sellerID int64) ([]OrderView, error) {
	rows, err := s.orderRepo.SellerRows(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return AggregateOrderRows(rows), nil
}

// UpdateStatusForSeller transitions an order's status on behalf of a seller
// owning at least one product in the order. Only the known states are
// accepted; re-asserting the current state succeeds.
func (s *orderService) UpdateStatusForSeller(ctx context.Context, orderID, sellerID int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidOrderStatus
	}
	return s.orderRepo.UpdateStatusForSeller(ctx, orderID, sellerID, status)
}

// ApproveOrder marks an order Approved. Approving twice is idempotent.
func (s *orderService) ApproveOrder(ctx context.Context, orderID int64) error {
	return s.orderRepo.Approve(ctx, orderID)
}
