package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/albashop/alba/db"
	"github.com/albashop/alba/db/mock"
	"github.com/albashop/alba/router"
)

func vendorProduct() *db.Product {
	return &db.Product{
		ID:         "prod1",
		Name:       "Espresso Beans",
		PriceCents: 1499,
		VendorID:   "vendor1",
	}
}

// TestListProductsHandler checks pagination defaults and bounds.
func TestListProductsHandler(t *testing.T) {
	var gotLimit, gotOffset int
	mockDb := &mock.Db{
		ListProductsFunc: func(limit, offset int) ([]*db.Product, error) {
			gotLimit, gotOffset = limit, offset
			return []*db.Product{vendorProduct()}, nil
		},
	}
	app := &App{dbStore: mockDb, logger: discardLogger()}

	testCases := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/products", defaultPageSize, 0},
		{"explicit", "/products?limit=5&offset=10", 5, 10},
		{"capped", "/products?limit=5000", maxPageSize, 0},
		{"garbage ignored", "/products?limit=abc&offset=-3", defaultPageSize, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			rr := httptest.NewRecorder()
			app.ListProductsHandler(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
			}
			if gotLimit != tc.wantLimit || gotOffset != tc.wantOffset {
				t.Errorf("got limit=%d offset=%d, want limit=%d offset=%d",
					gotLimit, gotOffset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

// TestGetProductHandler covers lookup and not found.
func TestGetProductHandler(t *testing.T) {
	mockDb := &mock.Db{
		GetProductFunc: func(id string) (*db.Product, error) {
			if id == "prod1" {
				return vendorProduct(), nil
			}
			return nil, db.ErrNotFound
		},
	}

	testCases := []struct {
		name       string
		paramID    string
		wantStatus int
		wantCode   string
	}{
		{"found", "prod1", http.StatusOK, CodeOkData},
		{"not found", "missing", http.StatusNotFound, CodeErrorNotFound},
		{"missing param", "", http.StatusBadRequest, CodeErrorInvalidRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := &App{
				dbStore:    mockDb,
				logger:     discardLogger(),
				paramGeter: staticParams{router.Param{Key: "id", Value: tc.paramID}},
			}

			req := httptest.NewRequest("GET", "/products/"+tc.paramID, nil)
			rr := httptest.NewRecorder()
			app.GetProductHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			body := decodeEnvelope(t, rr)
			if body["code"] != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, body["code"])
			}
		})
	}
}

// TestCreateProductHandler checks ownership assignment and validation.
func TestCreateProductHandler(t *testing.T) {
	var created *db.Product
	mockDb := &mock.Db{
		CreateProductFunc: func(p db.Product) (*db.Product, error) {
			p.ID = "prod-new"
			created = &p
			return &p, nil
		},
	}

	app := &App{
		validator: &DefaultValidator{},
		dbStore:   mockDb,
		logger:    discardLogger(),
	}

	req := httptest.NewRequest("POST", "/products",
		strings.NewReader(`{"name":"Grinder","price_cents":8999}`))
	req.Header.Set("Content-Type", "application/json")
	req = withClaims(req, &AuthClaims{UserID: "vendor1", Verified: true, Role: db.RoleVendor})
	rr := httptest.NewRecorder()

	app.CreateProductHandler(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	if created == nil || created.VendorID != "vendor1" {
		t.Errorf("expected product owned by vendor1, got %+v", created)
	}

	// Zero price is rejected.
	rr2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/products",
		strings.NewReader(`{"name":"Free Thing","price_cents":0}`))
	req2.Header.Set("Content-Type", "application/json")
	req2 = withClaims(req2, &AuthClaims{UserID: "vendor1", Role: db.RoleVendor})
	app.CreateProductHandler(rr2, req2)
	if rr2.Code != http.StatusBadRequest {
		t.Errorf("expected status %d for zero price, got %d", http.StatusBadRequest, rr2.Code)
	}
}

// TestUpdateProductHandler_Ownership checks vendors can only touch their
// own products while admins can touch any.
func TestUpdateProductHandler_Ownership(t *testing.T) {
	testCases := []struct {
		name       string
		claims     *AuthClaims
		wantStatus int
	}{
		{
			name:       "owning vendor",
			claims:     &AuthClaims{UserID: "vendor1", Verified: true, Role: db.RoleVendor},
			wantStatus: http.StatusOK,
		},
		{
			name:       "other vendor",
			claims:     &AuthClaims{UserID: "vendor2", Verified: true, Role: db.RoleVendor},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin",
			claims:     &AuthClaims{UserID: "admin1", Verified: true, Role: db.RoleAdmin},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDb := &mock.Db{
				GetProductFunc: func(id string) (*db.Product, error) {
					return vendorProduct(), nil
				},
			}

			app := &App{
				validator:  &DefaultValidator{},
				dbStore:    mockDb,
				logger:     discardLogger(),
				paramGeter: staticParams{router.Param{Key: "id", Value: "prod1"}},
			}

			req := httptest.NewRequest("PATCH", "/products/prod1",
				strings.NewReader(`{"price_cents":1599}`))
			req.Header.Set("Content-Type", "application/json")
			req = withClaims(req, tc.claims)
			rr := httptest.NewRecorder()

			app.UpdateProductHandler(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

// TestDeleteProductHandler checks the same ownership rule on deletes.
func TestDeleteProductHandler(t *testing.T) {
	deleted := false
	mockDb := &mock.Db{
		GetProductFunc: func(id string) (*db.Product, error) {
			return vendorProduct(), nil
		},
		DeleteProductFunc: func(id string) error {
			deleted = true
			return nil
		},
	}

	app := &App{
		dbStore:    mockDb,
		logger:     discardLogger(),
		paramGeter: staticParams{router.Param{Key: "id", Value: "prod1"}},
	}

	req := httptest.NewRequest("DELETE", "/products/prod1", nil)
	req = withClaims(req, &AuthClaims{UserID: "vendor2", Role: db.RoleVendor})
	rr := httptest.NewRecorder()
	app.DeleteProductHandler(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d for foreign vendor, got %d", http.StatusForbidden, rr.Code)
	}
	if deleted {
		t.Error("delete must not run for a foreign vendor")
	}

	rr2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("DELETE", "/products/prod1", nil)
	req2 = withClaims(req2, &AuthClaims{UserID: "vendor1", Role: db.RoleVendor})
	app.DeleteProductHandler(rr2, req2)

	if rr2.Code != http.StatusOK {
		t.Errorf("expected status %d for owner, got %d", http.StatusOK, rr2.Code)
	}
	if !deleted {
		t.Error("expected delete to run for the owner")
	}
}
