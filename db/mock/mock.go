package mock

import (
	"time"

	"github.com/albashop/alba/db"
)

// Compile-time check to ensure Db implements the DbApp interface
var _ db.DbApp = (*Db)(nil)

// Db implements db.DbApp for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	// --- Mock DbAuth Methods ---
	GetUserByEmailFunc         func(email string) (*db.User, error)
	GetUserByIdFunc            func(id string) (*db.User, error)
	CreateUserWithPasswordFunc func(user db.User) (*db.User, error)
	VerifyEmailFunc            func(userID string) error
	SetVerificationCodeFunc    func(userID string, codeHash string, issuedAt time.Time) error
	SetForgotPasswordCodeFunc  func(userID string, codeHash string, issuedAt time.Time) error
	UpdatePasswordFunc         func(userID string, newPasswordHash string) error
	ResetPasswordFunc          func(userID string, newPasswordHash string) error
	UpdateRefreshTokenFunc     func(userID string, refreshToken string) error
	UpdateProfileFunc          func(userID string, username string, avatarURL string) error
	UpdateRoleFunc             func(userID string, role string) error

	// --- Mock DbQueue Methods ---
	InsertJobFunc     func(job db.Job) error
	ClaimFunc         func(limit int) ([]*db.Job, error)
	MarkCompletedFunc func(jobID int64) error
	MarkFailedFunc    func(jobID int64, errMsg string) error

	// --- Mock DbStore Methods ---
	CreateProductFunc       func(p db.Product) (*db.Product, error)
	GetProductFunc          func(id string) (*db.Product, error)
	ListProductsFunc        func(limit, offset int) ([]*db.Product, error)
	UpdateProductFunc       func(p db.Product) error
	DeleteProductFunc       func(id string) error
	AddCartItemFunc         func(item db.CartItem) error
	RemoveCartItemFunc      func(userID, productID string) error
	ListCartItemsFunc       func(userID string) ([]*db.CartItem, error)
	ClearCartFunc           func(userID string) error
	CreatePurchaseFunc      func(p db.Purchase) (*db.Purchase, error)
	ListPurchasesByUserFunc func(userID string) ([]*db.Purchase, error)
	ListPurchasesFunc       func(limit, offset int) ([]*db.Purchase, error)
	CreateAddressFunc       func(a db.Address) (*db.Address, error)
	UpdateAddressFunc       func(a db.Address) error
	DeleteAddressFunc       func(id, userID string) error
	ListAddressesByUserFunc func(userID string) ([]*db.Address, error)
	UpsertReviewFunc        func(r db.Review) error
	DeleteReviewFunc        func(userID, productID string) error
	ListReviewsByProductFunc func(productID string, limit, offset int) ([]*db.Review, error)
}

// --- Implement DbAuth ---

func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, db.ErrUserNotFound // Default: Not found
}

func (m *Db) GetUserById(id string) (*db.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(id)
	}
	return nil, db.ErrUserNotFound // Default: Not found
}

func (m *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	if m.CreateUserWithPasswordFunc != nil {
		return m.CreateUserWithPasswordFunc(user)
	}
	// Default: Return the user passed in, assuming success
	user.ID = "mock-user-id"
	return &user, nil
}

func (m *Db) VerifyEmail(userID string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(userID)
	}
	return nil // Default: Success
}

func (m *Db) SetVerificationCode(userID string, codeHash string, issuedAt time.Time) error {
	if m.SetVerificationCodeFunc != nil {
		return m.SetVerificationCodeFunc(userID, codeHash, issuedAt)
	}
	return nil // Default: Success
}

func (m *Db) SetForgotPasswordCode(userID string, codeHash string, issuedAt time.Time) error {
	if m.SetForgotPasswordCodeFunc != nil {
		return m.SetForgotPasswordCodeFunc(userID, codeHash, issuedAt)
	}
	return nil // Default: Success
}

func (m *Db) UpdatePassword(userID string, newPasswordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(userID, newPasswordHash)
	}
	return nil // Default: Success
}

func (m *Db) ResetPassword(userID string, newPasswordHash string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(userID, newPasswordHash)
	}
	return nil // Default: Success
}

func (m *Db) UpdateRefreshToken(userID string, refreshToken string) error {
	if m.UpdateRefreshTokenFunc != nil {
		return m.UpdateRefreshTokenFunc(userID, refreshToken)
	}
	return nil // Default: Success
}

func (m *Db) UpdateProfile(userID string, username string, avatarURL string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(userID, username, avatarURL)
	}
	return nil // Default: Success
}

func (m *Db) UpdateRole(userID string, role string) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(userID, role)
	}
	return nil // Default: Success
}

// --- Implement DbQueue ---

func (m *Db) InsertJob(job db.Job) error {
	if m.InsertJobFunc != nil {
		return m.InsertJobFunc(job)
	}
	return nil // Default: Success
}

func (m *Db) Claim(limit int) ([]*db.Job, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(limit)
	}
	return nil, nil // Default: No jobs claimed
}

func (m *Db) MarkCompleted(jobID int64) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(jobID)
	}
	return nil // Default: Success
}

func (m *Db) MarkFailed(jobID int64, errMsg string) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(jobID, errMsg)
	}
	return nil // Default: Success
}

// --- Implement DbStore ---

func (m *Db) CreateProduct(p db.Product) (*db.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(p)
	}
	p.ID = "mock-product-id"
	return &p, nil
}

func (m *Db) GetProduct(id string) (*db.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(id)
	}
	return nil, db.ErrNotFound // Default: Not found
}

func (m *Db) ListProducts(limit, offset int) ([]*db.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(limit, offset)
	}
	return nil, nil
}

func (m *Db) UpdateProduct(p db.Product) error {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(p)
	}
	return nil
}

func (m *Db) DeleteProduct(id string) error {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(id)
	}
	return nil
}

func (m *Db) AddCartItem(item db.CartItem) error {
	if m.AddCartItemFunc != nil {
		return m.AddCartItemFunc(item)
	}
	return nil
}

func (m *Db) RemoveCartItem(userID, productID string) error {
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(userID, productID)
	}
	return nil
}

func (m *Db) ListCartItems(userID string) ([]*db.CartItem, error) {
	if m.ListCartItemsFunc != nil {
		return m.ListCartItemsFunc(userID)
	}
	return nil, nil
}

func (m *Db) ClearCart(userID string) error {
	if m.ClearCartFunc != nil {
		return m.ClearCartFunc(userID)
	}
	return nil
}

func (m *Db) CreatePurchase(p db.Purchase) (*db.Purchase, error) {
	if m.CreatePurchaseFunc != nil {
		return m.CreatePurchaseFunc(p)
	}
	p.ID = "mock-purchase-id"
	return &p, nil
}

func (m *Db) ListPurchasesByUser(userID string) ([]*db.Purchase, error) {
	if m.ListPurchasesByUserFunc != nil {
		return m.ListPurchasesByUserFunc(userID)
	}
	return nil, nil
}

func (m *Db) ListPurchases(limit, offset int) ([]*db.Purchase, error) {
	if m.ListPurchasesFunc != nil {
		return m.ListPurchasesFunc(limit, offset)
	}
	return nil, nil
}

func (m *Db) CreateAddress(a db.Address) (*db.Address, error) {
	if m.CreateAddressFunc != nil {
		return m.CreateAddressFunc(a)
	}
	a.ID = "mock-address-id"
	return &a, nil
}

func (m *Db) UpdateAddress(a db.Address) error {
	if m.UpdateAddressFunc != nil {
		return m.UpdateAddressFunc(a)
	}
	return nil
}

func (m *Db) DeleteAddress(id, userID string) error {
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(id, userID)
	}
	return nil
}

func (m *Db) ListAddressesByUser(userID string) ([]*db.Address, error) {
	if m.ListAddressesByUserFunc != nil {
		return m.ListAddressesByUserFunc(userID)
	}
	return nil, nil
}

func (m *Db) UpsertReview(r db.Review) error {
	if m.UpsertReviewFunc != nil {
		return m.UpsertReviewFunc(r)
	}
	return nil
}

func (m *Db) DeleteReview(userID, productID string) error {
	if m.DeleteReviewFunc != nil {
		return m.DeleteReviewFunc(userID, productID)
	}
	return nil
}

func (m *Db) ListReviewsByProduct(productID string, limit, offset int) ([]*db.Review, error) {
	if m.ListReviewsByProductFunc != nil {
		return m.ListReviewsByProductFunc(productID, limit, offset)
	}
	return nil, nil
}
