package handler

import (
	"net/http"

	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/notify"
	"github.com/horsh321/teem-server/internal/service"

	"github.com/rs/zerolog"
)

// CreateOrderResponse is returned by order creation.
type CreateOrderResponse struct {
	Order *model.Order  `json:"order"`
	Msg   string        `json:"msg"`
	Mail  notify.Result `json:"mail"`
}

// UpdateOrderResponse is returned by a status update.
type UpdateOrderResponse struct {
	UpdatedOrder *model.Order `json:"updatedOrder"`
	Msg          string       `json:"msg"`
}

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /order/{merchantCode}/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	quote, err := h.service.Checkout(r.Context(), r.PathValue("merchantCode"), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Create handles POST /order/{merchantCode}/create.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	receipt, err := h.service.CreateOrder(r.Context(), caller, r.PathValue("merchantCode"), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, CreateOrderResponse{
		Order: receipt.Order,
		Msg:   "Order successfully created.",
		Mail:  receipt.Mail,
	})
}

// ListByMerchant handles GET /order/{merchantCode}/all.
func (h *OrderHandler) ListByMerchant(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListByMerchant(r.Context(), r.PathValue("merchantCode"), parsePage(r))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ListByCustomer handles GET /order/{merchantCode}/all/{userId}.
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId", model.ErrInvalidUserID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	page, err := h.service.ListByCustomer(r.Context(), r.PathValue("merchantCode"), userID, parsePage(r))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /order/{merchantCode}/get/{orderId}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId", model.ErrInvalidOrderID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), r.PathValue("merchantCode"), orderID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Update handles PATCH /order/{merchantCode}/update/{orderId}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	orderID, err := pathUUID(r, "orderId", model.ErrInvalidOrderID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var patch model.OrderPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err, h.logger)
		return
	}
	// Empty strings mean "not provided".
	if patch.OrderStatus != nil && *patch.OrderStatus == "" {
		patch.OrderStatus = nil
	}
	if patch.Reference != nil && *patch.Reference == "" {
		patch.Reference = nil
	}

	order, err := h.service.UpdateStatus(r.Context(), caller, r.PathValue("merchantCode"), orderID, patch)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, UpdateOrderResponse{
		UpdatedOrder: order,
		Msg:          "Order info updated successfully",
	})
}

// Cancel handles DELETE /order/{merchantCode}/cancel/{orderId}.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	orderID, err := pathUUID(r, "orderId", model.ErrInvalidOrderID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.Cancel(r.Context(), caller, r.PathValue("merchantCode"), orderID); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "Order canceled!"})
}
