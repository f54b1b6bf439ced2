package alba

import (
	"net/http"

	"github.com/albashop/alba/config"
	"github.com/albashop/alba/core"
	"github.com/albashop/alba/router"
)

// route registers every endpoint on the application router. Auth routes
// come from the config so deployments can remap paths; storefront routes
// are fixed.
func route(cfg *config.Config, ap *core.App) {
	rt := ap.Router()

	auth := func(h http.HandlerFunc) http.Handler {
		return router.NewChain(h).WithMiddleware(ap.RequireAuth).Handler()
	}
	verified := func(h http.HandlerFunc) http.Handler {
		return router.NewChain(h).WithMiddleware(ap.RequireAuth, ap.RequireVerified).Handler()
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return router.NewChain(h).WithMiddleware(ap.RequireAuth, ap.RequireAdmin).Handler()
	}
	vendor := func(h http.HandlerFunc) http.Handler {
		return router.NewChain(h).WithMiddleware(ap.RequireAuth, ap.RequireVerified, ap.RequireVendorOrAdmin).Handler()
	}

	// auth
	rt.HandleFunc(cfg.Endpoints.Register, ap.RegisterHandler)
	rt.HandleFunc(cfg.Endpoints.Login, ap.LoginHandler)
	rt.HandleFunc(cfg.Endpoints.RefreshToken, ap.RefreshHandler)
	rt.Handle(cfg.Endpoints.SignOut, auth(ap.SignOutHandler))
	rt.Handle(cfg.Endpoints.SendVerificationCode, auth(ap.SendVerificationCodeHandler))
	rt.Handle(cfg.Endpoints.VerifyVerificationCode, auth(ap.VerifyVerificationCodeHandler))
	rt.HandleFunc(cfg.Endpoints.VerifyEmailLink, ap.VerifyEmailLinkHandler)
	rt.Handle(cfg.Endpoints.ChangePassword, verified(ap.ChangePasswordHandler))
	rt.HandleFunc(cfg.Endpoints.SendForgotPasswordCode, ap.SendForgotPasswordCodeHandler)
	rt.HandleFunc(cfg.Endpoints.VerifyForgotPasswordCode, ap.VerifyForgotPasswordCodeHandler)
	rt.Handle(cfg.Endpoints.UpdateProfile, auth(ap.UpdateProfileHandler))
	rt.Handle(cfg.Endpoints.UpdateRole, admin(ap.UpdateRoleHandler))

	// catalog
	rt.HandleFunc("GET /products", ap.ListProductsHandler)
	rt.HandleFunc("GET /products/:id", ap.GetProductHandler)
	rt.Handle("POST /products", vendor(ap.CreateProductHandler))
	rt.Handle("PATCH /products/:id", vendor(ap.UpdateProductHandler))
	rt.Handle("DELETE /products/:id", vendor(ap.DeleteProductHandler))

	// cart
	rt.Handle("GET /cart", auth(ap.ListCartHandler))
	rt.Handle("POST /cart", auth(ap.AddCartItemHandler))
	rt.Handle("DELETE /cart", auth(ap.ClearCartHandler))
	rt.Handle("DELETE /cart/:productId", auth(ap.RemoveCartItemHandler))

	// purchases
	rt.Handle("POST /purchases", verified(ap.CreatePurchaseHandler))
	rt.Handle("GET /purchases", auth(ap.ListMyPurchasesHandler))
	rt.Handle("GET /admin/purchases", admin(ap.ListAllPurchasesHandler))

	// addresses
	rt.Handle("GET /addresses", auth(ap.ListAddressesHandler))
	rt.Handle("POST /addresses", auth(ap.CreateAddressHandler))
	rt.Handle("PATCH /addresses/:id", auth(ap.UpdateAddressHandler))
	rt.Handle("DELETE /addresses/:id", auth(ap.DeleteAddressHandler))

	// reviews
	rt.HandleFunc("GET /products/:id/reviews", ap.ListReviewsHandler)
	rt.Handle("PUT /products/:id/reviews", verified(ap.UpsertReviewHandler))
	rt.Handle("DELETE /products/:id/reviews", auth(ap.DeleteReviewHandler))
}

// rootHandler wraps the router with the pre-router middleware that must
// see every request, currently just the IP blocker.
func rootHandler(cfg *config.Config, ap *core.App) http.Handler {
	var handler http.Handler = ap.Router()
	if cfg.BlockIp.Enabled {
		handler = core.NewBlockIp(ap).Middleware(handler)
	}
	return handler
}
