package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dulcecodigo/storefront/internal/domain/analytics"
	"github.com/dulcecodigo/storefront/internal/domain/order"
)

type createOrderRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	// Items arrives as the serialized cart string and is stored verbatim.
	Items      string `json:"items"`
	Total      string `json:"total"`
	PointsUsed int64  `json:"pointsUsed"`
}

// CreateOrder places an order. The user identity, if any, comes from the
// bearer token attached by optionalUser; a userId in the body is ignored.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var userID *int64
	if claims, ok := claimsFromContext(r.Context()); ok && !claims.Admin {
		userID = &claims.UserID
	}

	created, err := h.orders.Create(r.Context(), order.CreateRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		Items:         json.RawMessage(req.Items),
		Total:         req.Total,
		PointsUsed:    req.PointsUsed,
		UserID:        userID,
	})
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			respondError(w, r, http.StatusBadRequest, verr.Error())
			return
		}
		respondStorageError(w, r, err)
		return
	}

	h.recordEvent(r, "order_created", created.ID)
	respondJSON(w, r, http.StatusCreated, toOrderJSON(created))
}

// recordEvent tracks an analytics event. Failures are logged and ignored.
func (h *Handler) recordEvent(r *http.Request, eventType string, orderID int64) {
	meta := `{"orderId":` + strconv.FormatInt(orderID, 10) + `}`
	ua := r.UserAgent()
	ip := r.RemoteAddr

	err := h.events.RecordEvent(r.Context(), &analytics.Event{
		Type:      eventType,
		Metadata:  &meta,
		UserAgent: &ua,
		IPAddress: &ip,
	})
	if err != nil {
		zctx.From(r.Context()).Warn("record analytics event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order to a new status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == "" {
		respondError(w, r, http.StatusBadRequest, "status is required")
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		var terr *order.InvalidTransitionError
		switch {
		case errors.Is(err, order.ErrNotFound):
			respondError(w, r, http.StatusNotFound, "order not found")
		case errors.As(err, &terr):
			respondError(w, r, http.StatusBadRequest, terr.Error())
		default:
			respondStorageError(w, r, err)
		}
		return
	}

	respondJSON(w, r, http.StatusOK, toOrderJSON(updated))
}

// ListOrders returns all orders, newest first. Admin only.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.List(r.Context())
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toOrderListJSON(orders))
}
