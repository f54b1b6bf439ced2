package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albashop/alba/db"
)

// reviewJSON is the wire shape of a product review.
type reviewJSON struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// ListReviewsHandler returns a page of reviews for a product.
// Endpoint: GET /products/:id/reviews
// Authenticated: No
func (a *App) ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	productID := a.URLParam(r, "id")
	if productID == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	limit, offset := listParams(r)
	reviews, err := a.DbStore().ListReviewsByProduct(productID, limit, offset)
	if err != nil {
		a.Logger().Error("failed to list reviews", "product", productID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	out := make([]reviewJSON, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, reviewJSON{
			UserID:    rev.UserID,
			ProductID: rev.ProductID,
			Rating:    rev.Rating,
			Comment:   rev.Comment,
		})
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Reviews retrieved", out)
}

// UpsertReviewHandler writes the caller's review of a product, replacing a
// previous one.
// Endpoint: PUT /products/:id/reviews
// Authenticated: Yes, verified only
// Allowed Mimetype: application/json
func (a *App) UpsertReviewHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err, resp := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	productID := a.URLParam(r, "id")
	if productID == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if _, err := a.DbStore().GetProduct(productID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}

	if err := a.DbStore().UpsertReview(db.Review{
		UserID:    claims.UserID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}); err != nil {
		a.Logger().Error("failed to write review", "user", claims.UserID, "product", productID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonData(w, http.StatusOK, CodeOkUpdated, "Review saved", reviewJSON{
		UserID:    claims.UserID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
}

// DeleteReviewHandler removes the caller's review of a product.
// Endpoint: DELETE /products/:id/reviews
// Authenticated: Yes
func (a *App) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	productID := a.URLParam(r, "id")
	if productID == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := a.DbStore().DeleteReview(claims.UserID, productID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonOk(w, okDeleted)
}
