package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albashop/alba/crypto"
	"github.com/albashop/alba/db"
)

// purchaseLine is one snapshotted cart line inside a purchase record. Name
// and price are copied at purchase time so later catalog edits do not
// rewrite order history.
type purchaseLine struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// purchaseJSON is the wire shape of an order.
type purchaseJSON struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Items          json.RawMessage `json:"items"`
	TotalCents     int64           `json:"total_cents"`
	TrackingNumber string          `json:"tracking_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	AddressID      string          `json:"address_id"`
	Created        string          `json:"created"`
}

func newPurchaseJSON(p *db.Purchase) purchaseJSON {
	return purchaseJSON{
		ID:             p.ID,
		UserID:         p.UserID,
		Items:          p.Items,
		TotalCents:     p.TotalCents,
		TrackingNumber: p.TrackingNumber,
		InvoiceNumber:  p.InvoiceNumber,
		AddressID:      p.AddressID,
		Created:        db.TimeFormat(p.Created),
	}
}

// CreatePurchaseHandler turns the current cart into an order and empties
// the cart.
// Endpoint: POST /purchases
// Authenticated: Yes, verified only
// Allowed Mimetype: application/json
func (a *App) CreatePurchaseHandler(w http.ResponseWriter, r *http.Request) {
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
		AddressID string `json:"address_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressID == "" {
		writeJsonError(w, errorMissingFields)
		return
	}

	if !a.userOwnsAddress(claims.UserID, req.AddressID) {
		writeJsonError(w, errorNotFound)
		return
	}

	cart, err := a.DbStore().ListCartItems(claims.UserID)
	if err != nil {
		writeJsonError(w, errorDatabase)
		return
	}
	if len(cart) == 0 {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	var total int64
	lines := make([]purchaseLine, 0, len(cart))
	for _, item := range cart {
		product, err := a.DbStore().GetProduct(item.ProductID)
		if err != nil {
			// A product removed from the catalog mid-checkout is
			// skipped rather than failing the whole order.
			if errors.Is(err, db.ErrNotFound) {
				continue
			}
			writeJsonError(w, errorDatabase)
			return
		}
		lines = append(lines, purchaseLine{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   item.Quantity,
		})
		total += product.PriceCents * int64(item.Quantity)
	}
	if len(lines) == 0 {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	tracking, err := crypto.TrackingNumber()
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}
	invoice, err := crypto.InvoiceNumber()
	if err != nil {
		writeJsonError(w, errorTokenGeneration)
		return
	}

	items, _ := json.Marshal(lines)
	purchase, err := a.DbStore().CreatePurchase(db.Purchase{
		UserID:         claims.UserID,
		Items:          items,
		TotalCents:     total,
		TrackingNumber: tracking,
		InvoiceNumber:  invoice,
		AddressID:      req.AddressID,
	})
	if err != nil {
		a.Logger().Error("failed to create purchase", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	if err := a.DbStore().ClearCart(claims.UserID); err != nil {
		// The order exists; a stale cart is recoverable by the user.
		a.Logger().Error("failed to clear cart after purchase", "user", claims.UserID, "err", err)
	}

	writeJsonData(w, http.StatusCreated, CodeOkCreated, "Purchase created", newPurchaseJSON(purchase))
}

// userOwnsAddress reports whether addressID belongs to userID.
func (a *App) userOwnsAddress(userID, addressID string) bool {
	addresses, err := a.DbStore().ListAddressesByUser(userID)
	if err != nil {
		return false
	}
	for _, addr := range addresses {
		if addr.ID == addressID {
			return true
		}
	}
	return false
}

// ListMyPurchasesHandler returns the caller's order history.
// Endpoint: GET /purchases
// Authenticated: Yes
func (a *App) ListMyPurchasesHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := authClaimsFrom(r)
	if !ok {
		writeJsonError(w, errorNoAuthToken)
		return
	}

	purchases, err := a.DbStore().ListPurchasesByUser(claims.UserID)
	if err != nil {
		a.Logger().Error("failed to list purchases", "user", claims.UserID, "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	out := make([]purchaseJSON, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, newPurchaseJSON(p))
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Purchases retrieved", out)
}

// ListAllPurchasesHandler returns a page over every order.
// Endpoint: GET /admin/purchases
// Authenticated: Yes, admin only
func (a *App) ListAllPurchasesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)
	purchases, err := a.DbStore().ListPurchases(limit, offset)
	if err != nil {
		a.Logger().Error("failed to list all purchases", "err", err)
		writeJsonError(w, errorDatabase)
		return
	}

	out := make([]purchaseJSON, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, newPurchaseJSON(p))
	}
	writeJsonData(w, http.StatusOK, CodeOkData, "Purchases retrieved", out)
}
