package service

import (
	"strconv"
	"time"

	"ecobazaarx/internal/domain"
)

// PlaceholderProductName marks an order that has no line items in a
// left-joined row set.
const PlaceholderProductName = "No products"

// OrderView is one grouped order: the header fields plus its line items in
// row order.
type OrderView struct {
	OrderID     int64
	CustomerID  int64
	TotalAmount float64
	TotalCarbon float64
	Status      string
	CreatedAt   time.Time
	Items       []OrderItemView
}

// OrderItemView is one line item of a grouped order. ItemID and ProductID
// are nil for the placeholder entry.
type OrderItemView struct {
	ItemID      *int64
	ProductID   *int64
	ProductName string
	Quantity    int
	Price       float64
}

// AggregateOrderRows groups a flat joined-row sequence into orders. It is a
// pure function of its input:
//
//   - groups are emitted in first-seen row order, and the first row seen for
//     an order supplies its header fields;
//   - a row with a null item id yields exactly one "No products" placeholder
//     for that order, never more, even on malformed input;
//   - decimal text values are coerced to float64, defaulting to zero when
//     unparsable.
func AggregateOrderRows(rows []domain.OrderItemRow) []OrderView {
	views := []OrderView{}
	index := make(map[int64]int, len(rows))
	hasPlaceholder := make(map[int64]bool)

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			views = append(views, OrderView{
				OrderID:     row.OrderID,
				CustomerID:  row.CustomerID,
				TotalAmount: parseAmount(row.TotalAmount),
				TotalCarbon: parseAmount(row.TotalCarbon),
				Status:      row.Status,
				CreatedAt:   row.CreatedAt,
				Items:       []OrderItemView{},
			})
			i = len(views) - 1
			index[row.OrderID] = i
		}

		if !row.ItemID.Valid {
			if hasPlaceholder[row.OrderID] {
				continue
			}
			hasPlaceholder[row.OrderID] = true
			views[i].Items = append(views[i].Items, OrderItemView{
				ProductName: PlaceholderProductName,
				Quantity:    0,
				Price:       0,
			})
			continue
		}

		itemID := row.ItemID.Int64

		var productID *int64
		if row.ProductID.Valid {
			id := row.ProductID.Int64
			productID = &id
		}

		name := "Unknown Product"
		if row.ProductName.Valid {
			name = row.ProductName.String
		}

		price := 0.0
		if row.Price.Valid {
			price = parseAmount(row.Price.String)
		}

		views[i].Items = append(views[i].Items, OrderItemView{
			ItemID:      &itemID,
			ProductID:   productID,
			ProductName: name,
			Quantity:    int(row.Quantity.Int64),
			Price:       price,
		})
	}

	return views
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
