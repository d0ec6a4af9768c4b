package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"ecobazaarx/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

type mockProductRepository struct {
	pricing map[int64]domain.ProductPricing
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{pricing: make(map[int64]domain.ProductPricing)}
}

func (m *mockProductRepository) addPricing(id int64, price float64, carbon *float64) {
	p := domain.ProductPricing{ID: id, Price: decimal.NewFromFloat(price)}
	if carbon != nil {
		p.CarbonScore = decimal.NullDecimal{Decimal: decimal.NewFromFloat(*carbon), Valid: true}
	}
	m.pricing[id] = p
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	return 0, errors.New("not implemented")
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return errors.New("not implemented")
}

func (m *mockProductRepository) UpdateForSeller(ctx context.Context, product *domain.Product, sellerID int64) error {
	return errors.New("not implemented")
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (m *mockProductRepository) DeleteForSeller(ctx context.Context, id, sellerID int64) error {
	return errors.New("not implemented")
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProductRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProductRepository) FindPricingByIDs(ctx context.Context, ids []int64) ([]domain.ProductPricing, error) {
	result := []domain.ProductPricing{}
	for _, id := range ids {
		if p, ok := m.pricing[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return 0, nil
}

func (m *mockProductRepository) CountBySeller(ctx context.Context, sellerID int64) (int, error) {
	return 0, nil
}

type mockOrderRepository struct {
	created      []*domain.Order
	createdLines [][]domain.OrderLine
	nextID       int64
	rows         []domain.OrderItemRow
	statuses     map[int64]domain.OrderStatus
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{nextID: 1, statuses: make(map[int64]domain.OrderStatus)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order, lines []domain.OrderLine) (int64, error) {
	id := m.nextID
	m.nextID++
	m.created = append(m.created, order)
	m.createdLines = append(m.createdLines, lines)
	m.statuses[id] = order.Status
	return id, nil
}

func (m *mockOrderRepository) AllRows(ctx context.Context) ([]domain.OrderItemRow, error) {
	return m.rows, nil
}

func (m *mockOrderRepository) CustomerRows(ctx context.Context, customerID int64) ([]domain.OrderItemRow, error) {
	return m.rows, nil
}

func (m *mockOrderRepository) SellerRows(ctx context.Context, sellerID int64) ([]domain.OrderItemRow, error) {
	return m.rows, nil
}

func (m *mockOrderRepository) UpdateStatusForSeller(ctx context.Context, orderID, sellerID int64, status domain.OrderStatus) error {
	m.statuses[orderID] = status
	return nil
}

func (m *mockOrderRepository) Approve(ctx context.Context, orderID int64) error {
	m.statuses[orderID] = domain.OrderStatusApproved
	return nil
}

func (m *mockOrderRepository) Count(ctx context.Context) (int, error) {
	return len(m.created), nil
}

func (m *mockOrderRepository) CountDistinctBySeller(ctx context.Context, sellerID int64) (int, error) {
	return 0, nil
}

func TestProperty_OrderTotalsMatchLineSums(t *testing.T) {
	properties := gopter.NewProperties(nil)

	type lineInput struct {
		Price    float64
		Carbon   float64
		Quantity int
	}

	lineGen := gen.Struct(reflect.TypeOf(lineInput{}), map[string]gopter.Gen{
		"Price":    gen.Float64Range(0, 10000),
		"Carbon":   gen.Float64Range(0, 1000),
		"Quantity": gen.IntRange(1, 50),
	})

	properties.Property("totals equal the sum of price*qty and carbon*qty per line", prop.ForAll(
		func(inputs []lineInput) bool {
			lines := make([]domain.OrderLine, 0, len(inputs))
			wantTotal := decimal.Zero
			wantCarbon := decimal.Zero

			for i, in := range inputs {
				price := decimal.NewFromFloat(in.Price)
				carbon := decimal.NewFromFloat(in.Carbon)
				qty := decimal.NewFromInt(int64(in.Quantity))

				lines = append(lines, domain.OrderLine{
					ProductID:   int64(i + 1),
					Quantity:    in.Quantity,
					Price:       price,
					CarbonScore: carbon,
				})

				wantTotal = wantTotal.Add(price.Mul(qty))
				wantCarbon = wantCarbon.Add(carbon.Mul(qty))
			}

			total, carbonTotal := orderTotals(lines)

			if !total.Equal(wantTotal) {
				t.Logf("FAIL: total = %s, want %s", total, wantTotal)
				return false
			}
			if !carbonTotal.Equal(wantCarbon) {
				t.Logf("FAIL: carbon total = %s, want %s", carbonTotal, wantCarbon)
				return false
			}
			return true
		},
		gen.SliceOf(lineGen),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPlaceOrderSnapshotsPricing(t *testing.T) {
	productRepo := newMockProductRepository()
	carbon := 2.5
	productRepo.addPricing(1, 10.00, &carbon)
	productRepo.addPricing(2, 4.50, nil)

	orderRepo := newMockOrderRepository()
	service := NewOrderService(productRepo, orderRepo)

	placed, err := service.PlaceOrder(context.Background(), 7, []CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	wantTotal := decimal.NewFromFloat(33.50)
	if !placed.Total.Equal(wantTotal) {
		t.Errorf("total = %s, want %s", placed.Total, wantTotal)
	}

	// Product 2 has no carbon score, so it contributes zero.
	wantCarbon := decimal.NewFromFloat(5.0)
	if !placed.CarbonTotal.Equal(wantCarbon) {
		t.Errorf("carbon total = %s, want %s", placed.CarbonTotal, wantCarbon)
	}

	if len(orderRepo.created) != 1 {
		t.Fatalf("expected one order written, got %d", len(orderRepo.created))
	}

	order := orderRepo.created[0]
	if order.CustomerID != 7 {
		t.Errorf("customer id = %d, want 7", order.CustomerID)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("status = %s, want %s", order.Status, domain.OrderStatusPending)
	}

	lines := orderRepo.createdLines[0]
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !lines[0].Price.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("line 0 price = %s, want 10", lines[0].Price)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	orderRepo := newMockOrderRepository()
	service := NewOrderService(newMockProductRepository(), orderRepo)

	_, err := service.PlaceOrder(context.Background(), 1, nil)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}

	if len(orderRepo.created) != 0 {
		t.Error("nothing should be written for an empty cart")
	}
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	productRepo := newMockProductRepository()
	productRepo.addPricing(1, 5.00, nil)

	orderRepo := newMockOrderRepository()
	service := NewOrderService(productRepo, orderRepo)

	for _, qty := range []int{0, -3} {
		_, err := service.PlaceOrder(context.Background(), 1, []CartItem{{ProductID: 1, Quantity: qty}})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}

	if len(orderRepo.created) != 0 {
		t.Error("nothing should be written for invalid quantities")
	}
}

func TestPlaceOrderRejectsUnknownProducts(t *testing.T) {
	productRepo := newMockProductRepository()
	productRepo.addPricing(1, 5.00, nil)

	orderRepo := newMockOrderRepository()
	service := NewOrderService(productRepo, orderRepo)

	_, err := service.PlaceOrder(context.Background(), 1, []CartItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 1},
	})
	if !errors.Is(err, ErrProductsNotFound) {
		t.Errorf("expected ErrProductsNotFound, got %v", err)
	}

	if len(orderRepo.created) != 0 {
		t.Error("an order with unknown products must not be written")
	}
}

func TestUpdateStatusForSellerValidatesStatus(t *testing.T) {
	orderRepo := newMockOrderRepository()
	service := NewOrderService(newMockProductRepository(), orderRepo)
	ctx := context.Background()

	for _, status := range []string{"Shipped", "Cancelled", "pending", ""} {
		err := service.UpdateStatusForSeller(ctx, 1, 2, domain.OrderStatus(status))
		if !errors.Is(err, ErrInvalidOrderStatus) {
			t.Errorf("status %q: expected ErrInvalidOrderStatus, got %v", status, err)
		}
	}

	if err := service.UpdateStatusForSeller(ctx, 1, 2, domain.OrderStatusApproved); err != nil {
		t.Errorf("Approved should be accepted, got %v", err)
	}
	if err := service.UpdateStatusForSeller(ctx, 1, 2, domain.OrderStatusPending); err != nil {
		t.Errorf("Pending should be accepted, got %v", err)
	}
}

func TestApproveOrderIsIdempotent(t *testing.T) {
	orderRepo := newMockOrderRepository()
	service := NewOrderService(newMockProductRepository(), orderRepo)
	ctx := context.Background()

	if err := service.ApproveOrder(ctx, 1); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if err := service.ApproveOrder(ctx, 1); err != nil {
		t.Fatalf("second approve failed: %v", err)
	}

	if orderRepo.statuses[1] != domain.OrderStatusApproved {
		t.Errorf("status = %s, want Approved", orderRepo.statuses[1])
	}
}
