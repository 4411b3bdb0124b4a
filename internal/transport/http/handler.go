package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/lifecycle"
	"go.uber.org/zap"
)

// CheckoutService is implemented by checkout.Orchestrator.
type CheckoutService interface {
	PrepareCheckout(ctx context.Context, items []domain.CartItem, method domain.ShippingMethod) (domain.CheckoutResult, error)
	ConfirmCheckout(ctx context.Context, result domain.CheckoutResult, customer domain.Customer) (domain.Order, error)
	CancelOrder(ctx context.Context, c lifecycle.Confirmation) (domain.Order, error)
	MarkDelivered(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
}

const maxRequestBodySize = 1 << 20

type Handler struct {
	service CheckoutService
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(service CheckoutService, timeout time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// GET /api/v1/shipping-methods
func (h *Handler) ListShippingMethods(w http.ResponseWriter, _ *http.Request) {
	options := domain.ShippingMethods()

	dtos := make([]ShippingOptionDTO, 0, len(options))
	for _, o := range options {
		dtos = append(dtos, ShippingOptionDTO{Method: o.Method.String(), Enabled: o.Enabled})
	}

	h.respondJSON(w, http.StatusOK, dtos)
}

// POST /api/v1/checkout/prepare
func (h *Handler) PrepareCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PrepareCheckoutRequestDTO
	if !h.decode(w, r, &req) {
		return
	}

	items, method, ok := h.parsePrepare(w, req)
	if !ok {
		return
	}

	result, err := h.service.PrepareCheckout(ctx, items, method)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapCheckoutResultToDTO(result))
}

// POST /api/v1/checkout/confirm
func (h *Handler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ConfirmCheckoutRequestDTO
	if !h.decode(w, r, &req) {
		return
	}

	if req.IdempotencyKey == "" {
		h.respondError(w, http.StatusBadRequest, "missing_idempotency_key", "idempotency_key is required")
		return
	}

	key, err := uuid.Parse(req.IdempotencyKey)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_idempotency_key", "idempotency_key must be a uuid")
		return
	}

	customerID, ok := h.parseUUID(w, req.CustomerID, "customer_id")
	if !ok {
		return
	}
	customer := domain.Customer{ID: customerID, DeliveryAddress: req.DeliveryAddress}

	items, method, ok := h.parsePrepare(w, req.PrepareCheckoutRequestDTO)
	if !ok {
		return
	}

	if err := customer.ValidateFor(method); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	result, err := h.service.PrepareCheckout(ctx, items, method)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	if !result.Valid {
		h.respondJSON(w, http.StatusUnprocessableEntity, mapCheckoutResultToDTO(result))
		return
	}

	result.ID = key

	order, err := h.service.ConfirmCheckout(ctx, result, customer)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, mapOrderToDTO(order))
}

// GET /api/v1/orders/{order_id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapOrderToDTO(order))
}

// GET /api/v1/customers/{customer_id}/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customerID, ok := h.parseUUID(w, chi.URLParam(r, "customer_id"), "customer_id")
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(ctx, customerID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapOrdersToDTO(orders))
}

// POST /api/v1/orders/{order_id}/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req CancelOrderRequestDTO
	if !h.decode(w, r, &req) {
		return
	}

	if !req.Confirm {
		h.respondServiceError(w, r, domain.ErrCancellationNotConfirmed)
		return
	}

	order, err := h.service.CancelOrder(ctx, lifecycle.ConfirmCancellation(orderID, h.now().UTC()))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapOrderToDTO(order))
}

// POST /api/v1/orders/{order_id}/deliver
func (h *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.MarkDelivered(ctx, orderID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapOrderToDTO(order))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) parsePrepare(w http.ResponseWriter, req PrepareCheckoutRequestDTO) ([]domain.CartItem, domain.ShippingMethod, bool) {
	method, err := domain.ParseShippingMethod(req.Method)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_method", err.Error())
		return nil, "", false
	}

	items, err := mapCartItemsToDomain(req.Items)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_cart_item", err.Error())
		return nil, "", false
	}

	return items, method, true
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return h.parseUUID(w, chi.URLParam(r, "order_id"), "order_id")
}

// parseUUID reports missing_<field> or invalid_<field> when raw is not a uuid.
func (h *Handler) parseUUID(w http.ResponseWriter, raw, field string) (uuid.UUID, bool) {
	if raw == "" {
		h.respondError(w, http.StatusBadRequest, "missing_"+field, field+" is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_"+field, fmt.Sprintf("%s[%s] is not a uuid", field, raw))
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	h.respondError(w, status, Kind(err), err.Error())
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}
