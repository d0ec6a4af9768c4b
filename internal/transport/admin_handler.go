package transport

import (
	"net/http"

	"ecobazaarx/internal/middleware"
	"ecobazaarx/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AdminProductRequest is the admin payload for creating/updating a product.
// Admins choose which seller owns the product.
type AdminProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	CarbonScore float64 `json:"carbon_score" validate:"gte=0"`
	EcoLabel    string  `json:"eco_label" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	SellerID    int64   `json:"seller_id" validate:"required"`
}

// ReplyRequest carries a reply to a review.
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// AdminHandler handles HTTP requests for the admin role
type AdminHandler struct {
	userService    service.UserService
	productService service.ProductService
	orderService   service.OrderService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userService service.UserService,
	productService service.ProductService,
	orderService service.OrderService,
	reviewService service.ReviewService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		productService: productService,
		orderService:   orderService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// RegisterRoutes registers all admin routes behind auth + admin role checks
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))

		r.Get("/stats", h.Stats)
		r.Get("/users", h.ListUsers)
		r.Get("/pending-users", h.PendingUsers)
		r.Put("/users/{id}/approve", h.ApproveUser)
		r.Delete("/users/{id}", h.DeleteUser)
		r.Get("/sellers", h.ListSellers)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.AddProduct)
		r.Get("/products/{id}", h.GetProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)

		r.Get("/orders", h.ListOrders)
		r.Put("/orders/{id}/approve", h.ApproveOrder)

		r.Put("/reviews/{id}/reply", h.ReplyReview)
	})
}

// Stats returns the admin dashboard counters
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userService.AdminStats(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// ListUsers returns every account
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, users)
}

// PendingUsers returns accounts awaiting approval
func (h *AdminHandler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.PendingUsers(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, users)
}

// ApproveUser flips an account to Approved
func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.ApproveUser(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("User approved", zap.Int64("user_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "User approved successfully"})
}

// DeleteUser removes an account
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("User deleted", zap.Int64("user_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "User deleted successfully"})
}

// ListSellers returns all seller accounts
func (h *AdminHandler) ListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.userService.ListSellers(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sellers)
}

// ListProducts returns the full catalog
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product
func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
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

// AddProduct creates a product on behalf of a seller
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req AdminProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), req.SellerID, service.ProductInput{
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

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct edits any product, including reassigning its seller
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req AdminProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if msg := middleware.ValidationMessage(err); msg != "" {
			middleware.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.UpdateAsAdmin(r.Context(), id, req.SellerID, service.ProductInput{
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

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes any product
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.DeleteAsAdmin(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Product deleted successfully"})
}

// ListOrders returns every order, including itemless ones with a
// placeholder line
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orderService.AllOrders(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toSellerOrders(views))
}

// ApproveOrder transitions an order to Approved
func (h *AdminHandler) ApproveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orderService.ApproveOrder(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Order approved", zap.Int64("order_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Order approved successfully"})
}

// ReplyReview attaches a reply to any review
func (h *AdminHandler) ReplyReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req ReplyRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Reply cannot be empty")
		return
	}

	if err := h.reviewService.ReplyAsAdmin(r.Context(), id, req.Reply); err != nil {
		handleError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, middleware.MessageResponse{Message: "Reply sent successfully"})
}
