package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Handler exposes the checkout protocol over HTTP. The session id arrives in
// the X-Session-ID header, same as the cart endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Post("/start", h.start)
		r.Post("/payment-method", h.selectPaymentMethod)
		r.Post("/cash", h.submitCash)
		r.Post("/abort", h.abort)
	})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	pricing, err := h.service.Start(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	respond(w, http.StatusOK, pricing)
}

func (h *Handler) selectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	var req struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	receipt, err := h.service.SelectPaymentMethod(r.Context(), sessionID, req.Method)
	if err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	if receipt == nil {
		respond(w, http.StatusOK, map[string]string{"state": string(StateAwaitingPayment)})
		return
	}
	respond(w, http.StatusOK, receipt)
}

func (h *Handler) submitCash(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	var req struct {
		CashReceived decimal.Decimal `json:"cash_received"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	receipt, err := h.service.SubmitCash(r.Context(), sessionID, req.CashReceived)
	if err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	respond(w, http.StatusOK, receipt)
}

func (h *Handler) abort(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	if err := h.service.Abort(r.Context(), sessionID); err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"state": string(StateIdle)})
}

func status(err error) int {
	switch {
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrInsufficientCash):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		http.Error(w, "X-Session-ID header is required", http.StatusBadRequest)
		return "", false
	}
	return sessionID, true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
