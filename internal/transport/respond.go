package transport

import (
	"net/http"
	"strconv"
	"time"

	"ecobazaarx/internal/domain"
	"ecobazaarx/internal/middleware"
	"ecobazaarx/internal/repository"
	"ecobazaarx/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleError maps service/repository errors onto HTTP statuses. Anything
// unrecognized is a 500 carrying the raw error text.
func handleError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch err {
	case service.ErrEmptyCart:
		middleware.RespondWithError(w, http.StatusBadRequest, "Products array is required")
	case service.ErrProductsNotFound:
		middleware.RespondWithError(w, http.StatusBadRequest, "Some products not found")
	case service.ErrInvalidQuantity:
		middleware.RespondWithError(w, http.StatusBadRequest, "Quantity must be greater than 0")
	case service.ErrInvalidOrderStatus:
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid order status")
	case service.ErrInvalidRole:
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid role")
	case service.ErrInvalidCredentials:
		middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case service.ErrUserNotApproved:
		middleware.RespondWithError(w, http.StatusForbidden, "User not approved yet")
	case service.ErrInvalidToken:
		middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
	case service.ErrTokenExpired:
		middleware.RespondWithError(w, http.StatusUnauthorized, "Refresh token expired")
	case repository.ErrUserAlreadyExists:
		middleware.RespondWithError(w, http.StatusBadRequest, "User already exists")
	case repository.ErrUserNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "User not found")
	case repository.ErrProductNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
	case repository.ErrOrderNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "Order not found")
	case repository.ErrReviewNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "Review not found")
	default:
		logger.Error("Unhandled error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// idParam parses a numeric chi URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// callerID pulls the authenticated user id out of the request context.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return 0, false
	}
	return id, true
}

// Order view DTOs. The customer view and the admin/seller view expose
// different header field names, so both shapes are kept explicit.

type orderItemJSON struct {
	OrderItemID *int64  `json:"order_item_id"`
	ProductID   *int64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type customerOrderJSON struct {
	OrderID     int64           `json:"order_id"`
	Total       float64         `json:"total"`
	TotalCarbon float64         `json:"total_carbon"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []orderItemJSON `json:"items"`
}

type sellerOrderJSON struct {
	OrderID     int64           `json:"order_id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount float64         `json:"total_amount"`
	TotalCarbon float64         `json:"total_carbon"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []orderItemJSON `json:"items"`
}

func toItemJSON(items []service.OrderItemView) []orderItemJSON {
	out := make([]orderItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, orderItemJSON{
			OrderItemID: item.ItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return out
}

func toCustomerOrders(views []service.OrderView) []customerOrderJSON {
	out := make([]customerOrderJSON, 0, len(views))
	for _, v := range views {
		out = append(out, customerOrderJSON{
			OrderID:     v.OrderID,
			Total:       v.TotalAmount,
			TotalCarbon: v.TotalCarbon,
			Status:      v.Status,
			CreatedAt:   v.CreatedAt,
			Items:       toItemJSON(v.Items),
		})
	}
	return out
}

func toSellerOrders(views []service.OrderView) []sellerOrderJSON {
	out := make([]sellerOrderJSON, 0, len(views))
	for _, v := range views {
		out = append(out, sellerOrderJSON{
			OrderID:     v.OrderID,
			CustomerID:  v.CustomerID,
			TotalAmount: v.TotalAmount,
			TotalCarbon: v.TotalCarbon,
			Status:      v.Status,
			CreatedAt:   v.CreatedAt,
			Items:       toItemJSON(v.Items),
		})
	}
	return out
}

// reviewJSON flattens the nullable reply for clients.
type reviewJSON struct {
	ID          int64   `json:"id"`
	CustomerID  int64   `json:"customer_id"`
	ProductID   int64   `json:"product_id"`
	Rating      int     `json:"rating"`
	Comment     string  `json:"comment"`
	Reply       *string `json:"reply"`
	ProductName string  `json:"product_name"`
}

func toReviews(reviews []*domain.Review) []reviewJSON {
	out := make([]reviewJSON, 0, len(reviews))
	for _, rv := range reviews {
		var reply *string
		if rv.Reply.Valid {
			r := rv.Reply.String
			reply = &r
		}
		out = append(out, reviewJSON{
			ID:          rv.ID,
			CustomerID:  rv.CustomerID,
			ProductID:   rv.ProductID,
			Rating:      rv.Rating,
			Comment:     rv.Comment,
			Reply:       reply,
			ProductName: rv.ProductName,
		})
	}
	return out
}
