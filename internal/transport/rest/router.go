package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/department"
	"github.com/frahmantamala/hr-management/internal/objectperm"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	userHandler *user.Handler,
	permissionHandler *objectperm.Handler,
	departmentHandler *department.Handler,
	attendanceHandler *attendance.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.Refresh)
			sr.Post("/logout", authHandler.Logout)
		})

		// Everything below requires an authenticated user. The middleware
		// also rotates expired access tokens off the refresh cookie.
		r.Group(func(pr chi.Router) {
			pr.Use(authMiddleware.Handler)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", userHandler.Me)
				ur.Get("/{id}", userHandler.Get)
				ur.Put("/{id}/password", userHandler.ChangePassword)
				ur.Put("/{id}/active", userHandler.SetActive)
			})

			pr.Route("/permissions", func(or chi.Router) {
				or.Get("/{model}", permissionHandler.GetAccessibleObjects)
				or.Get("/{model}/{objectID}", permissionHandler.GetObjectPermissions)
				or.Post("/{model}/{objectID}", permissionHandler.ApplyBatch)
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", departmentHandler.List)
				dr.Post("/", departmentHandler.Create)
				dr.Get("/{id}", departmentHandler.Get)
				dr.Put("/{id}", departmentHandler.Update)
				dr.Delete("/{id}", departmentHandler.Delete)
			})

			pr.Route("/attendances", func(ar chi.Router) {
				ar.Get("/", attendanceHandler.List)
				ar.Post("/clock-in", attendanceHandler.ClockIn)
				ar.Get("/{id}", attendanceHandler.Get)
				ar.Patch("/{id}/clock-out", attendanceHandler.ClockOut)
				ar.Delete("/{id}", attendanceHandler.Delete)
			})
		})
	})
}
