package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"giftcertificates/internal/delivery/http/controllers"
	"giftcertificates/internal/delivery/http/middleware"
	"giftcertificates/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Mutating certificate and tag routes require a Bearer token; reads are public.
func NewRouter(
	certController *controllers.CertificateController,
	tagController *controllers.TagController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Certificates
	mux.HandleFunc("POST /certificates", requireAuth(certController.Create))
	mux.HandleFunc("GET /certificates", certController.List)
	mux.HandleFunc("GET /certificates/search", certController.Search)
	mux.HandleFunc("GET /certificates/{id}", certController.Get)
	mux.HandleFunc("PATCH /certificates/{id}", requireAuth(certController.Update))
	mux.HandleFunc("DELETE /certificates/{id}", requireAuth(certController.Delete))

	// Tags
	mux.HandleFunc("POST /tags", requireAuth(tagController.Create))
	mux.HandleFunc("GET /tags", tagController.GetByName)
	mux.HandleFunc("GET /tags/{id}", tagController.Get)
	mux.HandleFunc("DELETE /tags/{id}", requireAuth(tagController.Delete))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /users/me", requireAuth(authController.Me))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
