package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albashop/alba/db"
)

// cartItemJSON is the wire shape of a cart line.
type cartItemJSON struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ListCartHandler returns the authenticated user's cart.
// Endpoint: GET /cart
// Authenticated: Yes
func (a *App) ListCartHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	items, err := a.DbStore().ListCartItems(claims.UserID)
	if err != nil {
		a.Logger().Error("failed to list cart", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	out := make([]cartItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemJSON{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Cart retrieved", out)
}

// AddCartItemHandler adds quantity of a product to the cart. Adding an
// already present product increases its quantity.
// Endpoint: POST /cart
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
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
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}
	if req.ProductID == "" {
		writeJsonError(w, errorMissingFields)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	// Reject unknown products up front rather than relying on the foreign
	// key error.
	if _, err := a.DbStore().GetProduct(req.ProductID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorDatabase)
		return
	}

	if err := a.DbStore().AddCartItem(db.CartItem{
		UserID:    claims.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		a.Logger().Error("failed to add cart item", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonData(w, http.StatusCreated, CodeOkCreated, "Item added to cart",
		cartItemJSON{ProductID: req.ProductID, Quantity: req.Quantity})
}

// RemoveCartItemHandler drops a product from the cart entirely.
// Endpoint: DELETE /cart/:productId
// Authenticated: Yes
func (a *App) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	productID := a.URLParam(r, "productId")
	if productID == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if err := a.DbStore().RemoveCartItem(claims.UserID, productID); err != nil {
		a.Logger().Error("failed to remove cart item", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonOk(w, okDeleted)
}

// ClearCartHandler empties the cart.
// Endpoint: DELETE /cart
// Authenticated: Yes
func (a *App) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	if err := a.DbStore().ClearCart(claims.UserID); err != nil {
		a.Logger().Error("failed to clear cart", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}
	writeJsonOk(w, okDeleted)
}
