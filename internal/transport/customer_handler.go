package transport

import (
	"net/http"

	"ecobazaarx/internal/middleware"
	"ecobazaarx/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartItemRequest is a single cart line in a place-order request.
type CartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required"`
}

// PlaceOrderRequest is the body for placing an order.
type PlaceOrderRequest struct {
	Products []CartItemRequest `json:"products"`
}

// PlaceOrderResponse echoes the snapshotted totals back to the customer.
type PlaceOrderResponse struct {
	Message     string  `json:"message"`
	OrderID     int64   `json:"orderId"`
	Total       float64 `json:"total"`
	CarbonTotal float64 `json:"carbon_total"`
}

// AddReviewRequest is the body for leaving a review.
type AddReviewRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required"`
}

// UpdateProfileRequest is the body for editing the customer's own profile.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CustomerHandler handles HTTP requests for the customer role
type CustomerHandler struct {
	userService    service.UserService
	productService service.ProductService
	orderService   service.OrderService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	userService service.UserService,
	productService service.ProductService,
	orderService service.OrderService,
	reviewService service.ReviewService,
	logger *zap.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		userService:    userService,
		productService: productService,
		orderService:   orderService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// RegisterRoutes registers all customer routes behind auth + customer role checks
func (h *CustomerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/customer", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireCustomer(h.logger))

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Post("/orders", h.PlaceOrder)
		r.Get("/orders", h.ListOrders)

		r.Post("/reviews", h.AddReview)
		r.Get("/reviews", h.ListReviews)

		r.Get("/profile", h.Profile)
		r.Put("/profile", h.UpdateProfile)
	})
}

// ListProducts returns the full catalog for browsing
func (h *CustomerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product
func (h *CustomerHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// PlaceOrder creates an order from the customer's cart, snapshotting
// current prices and carbon scores
func (h *CustomerHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.CartItem, 0, len(req.Products))
	for _, it := range req.Products {
		items = append(items, service.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	placed, err := h.orderService.PlaceOrder(r.Context(), customerID, items)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Order placed",
		zap.Int64("order_id", placed.OrderID),
		zap.Int64("customer_id", customerID))
	middleware.RespondWithJSON(w, http.StatusCreated, PlaceOrderResponse{
		Message:     "Order placed successfully",
		OrderID:     placed.OrderID,
		Total:       placed.Total.InexactFloat64(),
		CarbonTotal: placed.CarbonTotal.InexactFloat64(),
	})
}

// ListOrders returns the customer's own order history
func (h *CustomerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}

	views, err := h.orderService.CustomerOrders(r.Context(), customerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCustomerOrders(views))
}

// AddReview leaves a review on a product
func (h *CustomerHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req AddReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewService.Add(r.Context(), customerID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":   "Review submitted successfully",
		"review_id": review.ID,
	})
}

// ListReviews returns the customer's own reviews
func (h *CustomerHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toReviews(reviews))
}

// Profile returns the customer's own account details
func (h *CustomerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Profile(r.Context(), customerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile edits the customer's own name and email
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), customerID, req.Name, req.Email); err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Profile updated successfully"})
}
