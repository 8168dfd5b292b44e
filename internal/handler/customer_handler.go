package handler

import (
	"net/http"

	"github.com/horsh321/teem-server/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles the merchant customer ledger endpoints.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /customer/{merchantCode}/all.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	page, err := h.service.ListByMerchant(r.Context(), caller, r.PathValue("merchantCode"), parsePage(r))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /customer/{merchantCode}/get/{username}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	detail, err := h.service.GetByUsername(r.Context(), caller, r.PathValue("merchantCode"), r.PathValue("username"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /customer/{merchantCode}/delete/{username}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), caller, r.PathValue("merchantCode"), r.PathValue("username")); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "Customer deleted"})
}
