package router

import (
	"context"
	"net/http"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/handler"
	"github.com/horsh321/teem-server/internal/middleware"
	"github.com/horsh321/teem-server/internal/model"

	"github.com/rs/zerolog"
)

// Options carries the collaborators shared by every route.
type Options struct {
	Verifier       middleware.TokenVerifier
	AllowedOrigins string

	// Ready, when set, is consulted by /health; an error answers 503.
	Ready func(ctx context.Context) error

	// Media, when set, serves locally stored media under /media/.
	Media http.Handler

	Logger zerolog.Logger
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	customerHandler *handler.CustomerHandler,
	opts Options,
) http.Handler {
	mux := http.NewServeMux()
	logger := opts.Logger

	authed := func(roles []model.Role, h http.HandlerFunc) http.Handler {
		return middleware.Authenticate(opts.Verifier, roles, logger)(h)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				logger.Error().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Orders
	mux.Handle("POST /api/v1/order/{merchantCode}/checkout", authed(auth.RolesAll, orderHandler.Checkout))
	mux.Handle("POST /api/v1/order/{merchantCode}/create", authed(auth.RolesAll, orderHandler.Create))
	mux.HandleFunc("GET /api/v1/order/{merchantCode}/all", orderHandler.ListByMerchant)
	mux.HandleFunc("GET /api/v1/order/{merchantCode}/all/{userId}", orderHandler.ListByCustomer)
	mux.HandleFunc("GET /api/v1/order/{merchantCode}/get/{orderId}", orderHandler.GetByID)
	mux.Handle("PATCH /api/v1/order/{merchantCode}/update/{orderId}", authed(auth.RolesAll, orderHandler.Update))
	mux.Handle("DELETE /api/v1/order/{merchantCode}/cancel/{orderId}", authed(auth.RolesAll, orderHandler.Cancel))

	// Customer ledger
	mux.Handle("GET /api/v1/customer/{merchantCode}/all", authed(auth.RolesAll, customerHandler.List))
	mux.Handle("GET /api/v1/customer/{merchantCode}/get/{username}", authed(auth.RolesAll, customerHandler.Get))
	mux.Handle("DELETE /api/v1/customer/{merchantCode}/delete/{username}", authed(auth.RolesAll, customerHandler.Delete))

	if opts.Media != nil {
		mux.Handle("GET /media/", http.StripPrefix("/media", opts.Media))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Endpoint not found"}`))
	})

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(opts.AllowedOrigins)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
