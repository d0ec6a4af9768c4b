package transport

import (
	"net/http"

	"ecobazaarx/internal/domain"
	"ecobazaarx/internal/middleware"
	"ecobazaarx/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SellerProductRequest is the seller payload for creating/updating a
// product. Ownership is taken from the authenticated seller, never the body.
type SellerProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	CarbonScore float64 `json:"carbon_score" validate:"gte=0"`
	EcoLabel    string  `json:"eco_label" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// OrderStatusRequest carries the new status for an order.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SellerHandler handles HTTP requests for the seller role
type SellerHandler struct {
	userService    service.UserService
	productService service.ProductService
	orderService   service.OrderService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(
	userService service.UserService,
	productService service.ProductService,
	orderService service.OrderService,
	reviewService service.ReviewService,
	logger *zap.Logger,
) *SellerHandler {
	return &SellerHandler{
		userService:    userService,
		productService: productService,
		orderService:   orderService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// RegisterRoutes registers all seller routes behind auth + seller role checks
func (h *SellerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/seller", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireSeller(h.logger))

		r.Get("/stats", h.Stats)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.AddProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)

		r.Get("/orders", h.ListOrders)
		r.Put("/orders/{orderId}/status", h.UpdateOrderStatus)

		r.Get("/reviews", h.ListReviews)
		r.Put("/reviews/{reviewId}/reply", h.ReplyReview)
	})
}

// Stats returns the seller dashboard counters
func (h *SellerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	stats, err := h.userService.SellerStats(r.Context(), sellerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// ListProducts returns the seller's own products
func (h *SellerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	products, err := h.productService.ListBySeller(r.Context(), sellerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// AddProduct creates a product owned by the authenticated seller
func (h *SellerHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req SellerProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), sellerID, service.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       decimal.NewFromFloat(req.Price),
		CarbonScore: decimal.NewFromFloat(req.CarbonScore),
		EcoLabel:    req.EcoLabel,
		Stock:       req.Stock,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.Int64("seller_id", sellerID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct edits a product only if the seller owns it
func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req SellerProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.productService.UpdateAsSeller(r.Context(), id, sellerID, service.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       decimal.NewFromFloat(req.Price),
		CarbonScore: decimal.NewFromFloat(req.CarbonScore),
		EcoLabel:    req.EcoLabel,
		Stock:       req.Stock,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Product updated successfully"})
}

// DeleteProduct removes a product only if the seller owns it
func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.DeleteAsSeller(r.Context(), id, sellerID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Product deleted successfully"})
}

// ListOrders returns orders containing at least one of the seller's products
func (h *SellerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	views, err := h.orderService.SellerOrders(r.Context(), sellerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toSellerOrders(views))
}

// UpdateOrderStatus changes an order's status when the order contains one of
// the seller's products
func (h *SellerHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	orderID, err := idParam(r, "orderId")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req OrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}

	err = h.orderService.UpdateStatusForSeller(r.Context(), orderID, sellerID, domain.OrderStatus(req.Status))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Order status updated",
		zap.Int64("order_id", orderID),
		zap.Int64("seller_id", sellerID),
		zap.String("status", req.Status))
	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Order status updated successfully"})
}

// ListReviews returns reviews left on the seller's products
func (h *SellerHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListBySeller(r.Context(), sellerID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toReviews(reviews))
}

// ReplyReview attaches a reply to a review of one of the seller's products
func (h *SellerHandler) ReplyReview(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := callerID(w, r)
	if !ok {
		return
	}

	reviewID, err := idParam(r, "reviewId")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req ReplyRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Reply cannot be empty")
		return
	}

	if err := h.reviewService.ReplyAsSeller(r.Context(), reviewID, sellerID, req.Reply); err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Reply sent successfully"})
}
