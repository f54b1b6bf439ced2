package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/albashop/alba/db"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// listParams parses limit/offset query parameters with bounds.
func listParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// productJSON is the wire shape of a catalog record.
type productJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	VendorID    string `json:"vendor_id"`
}

func newProductJSON(p *db.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		VendorID:    p.VendorID,
	}
}

// ListProductsHandler returns a catalog page.
// Endpoint: GET /products
// Authenticated: No
func (a *App) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	products, err := a.DbStore().ListProducts(limit, offset)
	if err != nil {
		a.Logger().Error("failed to list products", "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, newProductJSON(p))
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Products retrieved", out)
}

// GetProductHandler returns a single catalog record.
// Endpoint: GET /products/:id
// Authenticated: No
func (a *App) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id := a.URLParam(r, "id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	product, err := a.DbStore().GetProduct(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Product retrieved", newProductJSON(product))
}

// CreateProductHandler adds a catalog record owned by the calling vendor.
// Endpoint: POST /products
// Authenticated: Yes, vendor or admin
// Allowed Mimetype: application/json
func (a *App) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		PriceCents  int64  `json:"price_cents"`
		ImageURL    string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.Name == "" || req.PriceCents <= 0 {
		writeJsonError(w, errorMissingFields)
		return
	}

	product, err := a.DbStore().CreateProduct(db.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		VendorID:    claims.UserID,
	})
	if err != nil {
		a.Logger().Error("failed to create product", "err", err)
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonData(w, http.StatusCreated, CodeOkCreated, "Product created", newProductJSON(product))
}

// UpdateProductHandler modifies a catalog record. Vendors may only touch
// their own products; admins may touch any.
// Endpoint: PATCH /products/:id
// Authenticated: Yes, vendor or admin
// Allowed Mimetype: application/json
func (a *App) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	id := a.URLParam(r, "id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetProduct(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	if claims.Role != db.RoleAdmin && existing.VendorID != claims.UserID {
		writeJsonError(w, errorForbidden)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		PriceCents  *int64  `json:"price_cents"`
		ImageURL    *string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.PriceCents != nil {
		existing.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		existing.ImageURL = *req.ImageURL
	}
	if existing.Name == "" || existing.PriceCents <= 0 {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := a.DbStore().UpdateProduct(*existing); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonData(w, http.StatusOK, CodeOkUpdated, "Product updated", newProductJSON(existing))
}

// DeleteProductHandler removes a catalog record, with the same ownership
// rule as updates.
// Endpoint: DELETE /products/:id
// Authenticated: Yes, vendor or admin
func (a *App) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	id := a.URLParam(r, "id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbStore().GetProduct(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	if claims.Role != db.RoleAdmin && existing.VendorID != claims.UserID {
		writeJsonError(w, errorForbidden)
		return
	}

	if err := a.DbStore().DeleteProduct(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonOk(w, okDeleted)
}
