package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

// Handler exposes the session cart over HTTP. The session id arrives in the
// X-Session-ID header; each terminal keeps exactly one.
type Handler struct {
	sessions *Sessions
	catalog  catalog.Service
}

func NewHandler(sessions *Sessions, catalog catalog.Service) *Handler {
	return &Handler{sessions: sessions, catalog: catalog}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.view)
		r.Delete("/", h.clear)
		r.Post("/items", h.addItem)
		r.Delete("/items/{id}", h.removeItem)
	})
}

type cartView struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Empty bool            `json:"empty"`
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, cartView{Lines: c.Lines(), Total: c.Total(), Empty: c.IsEmpty()})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	c.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c.AddProduct(p)
	respond(w, http.StatusOK, cartView{Lines: c.Lines(), Total: c.Total(), Empty: c.IsEmpty()})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cart(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cart(w http.ResponseWriter, r *http.Request) (*Cart, bool) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		http.Error(w, "X-Session-ID header is required", http.StatusBadRequest)
		return nil, false
	}
	return h.sessions.Cart(sessionID), true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
