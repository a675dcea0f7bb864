package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
)

// Handler exposes category browsing and admin product editing endpoints.
type Handler struct{ sync Synchronizer }

func NewHandler(sync Synchronizer) *Handler { return &Handler{sync: sync} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventory/{category}", func(r chi.Router) {
		r.Get("/", h.listCategory)
		r.Post("/", h.addProduct)
		r.Get("/{id}", h.getRecord)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
}

func (h *Handler) listCategory(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := h.sync.ListCategory(r.Context(), category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Category = chi.URLParam(r, "category")
	p, err := h.sync.AddProduct(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := h.sync.GetRecord(r.Context(), category, id)
	if err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req catalog.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Category = chi.URLParam(r, "category")
	p, err := h.sync.UpdateProduct(r.Context(), id, req)
	if err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.sync.DeleteProduct(r.Context(), category, id); err != nil {
		http.Error(w, err.Error(), status(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func status(err error) int {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
