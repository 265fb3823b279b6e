package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dulcecodigo/storefront/internal/domain/product"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Stock       int    `json:"stock"`
	IsActive    *bool  `json:"isActive"`
}

func (req *productRequest) toProduct() (*product.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("name is required")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, errors.New("price must be a non-negative decimal")
	}
	if req.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price.Round(2),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    active,
	}, nil
}

// ListProducts returns the active catalog, optionally filtered by category.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []product.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.products.ListByCategory(r.Context(), category)
	} else {
		products, err = h.products.List(r.Context())
	}
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductListJSON(products))
}

// GetProduct returns a single product by id, active or not.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductJSON(p))
}

// CreateProduct adds a catalog item. Admin only.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.toProduct()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.products.Create(r.Context(), p)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toProductJSON(created))
}

// UpdateProduct replaces a catalog item. Admin only.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.toProduct()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = id

	updated, err := h.products.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductJSON(updated))
}

// DeleteProduct removes a catalog item. Admin only.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
