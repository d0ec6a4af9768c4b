package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

func requireRole(role, denial string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := GetUserRole(r.Context())
			if !ok || got != role {
				logger.Warn("Role not authorized for endpoint",
					zap.String("role", got),
					zap.String("required", role),
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, denial)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin ensures the caller carries the admin role
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("admin", "Access denied. Admins only.", logger)
}

// RequireSeller ensures the caller carries the seller role
func RequireSeller(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("seller", "Access denied. Sellers only.", logger)
}

// RequireCustomer ensures the caller carries the customer role
func RequireCustomer(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("customer", "Access denied. Customers only.", logger)
}
