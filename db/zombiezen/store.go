package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/albashop/alba/db"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// The collaborator stores are deliberately plain: validation lives in the
// handlers, every write is a single statement, last writer wins.

func newProductFromStmt(stmt *sqlite.Stmt) (*db.Product, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}
	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}
	return &db.Product{
		ID:          stmt.GetText("id"),
		Name:        stmt.GetText("name"),
		Description: stmt.GetText("description"),
		PriceCents:  stmt.GetInt64("price_cents"),
		ImageURL:    stmt.GetText("image_url"),
		VendorID:    stmt.GetText("vendor_id"),
		Created:     created,
		Updated:     updated,
	}, nil
}

func (d *Db) CreateProduct(p db.Product) (*db.Product, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	var created *db.Product
	err = sqlitex.Execute(conn,
		`INSERT INTO products (id, name, description, price_cents, image_url, vendor_id)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, name, description, price_cents, image_url, vendor_id, created, updated`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newProductFromStmt(stmt)
				return err
			},
			Args: []any{p.ID, p.Name, p.Description, p.PriceCents, p.ImageURL, p.VendorID},
		})
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return created, nil
}

func (d *Db) GetProduct(id string) (*db.Product, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var product *db.Product
	err = sqlitex.Execute(conn,
		`SELECT id, name, description, price_cents, image_url, vendor_id, created, updated
		FROM products WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				product, err = newProductFromStmt(stmt)
				return err
			},
			Args: []any{id},
		})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, db.ErrNotFound
	}
	return product, nil
}

func (d *Db) ListProducts(limit, offset int) ([]*db.Product, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var products []*db.Product
	err = sqlitex.Execute(conn,
		`SELECT id, name, description, price_cents, image_url, vendor_id, created, updated
		FROM products ORDER BY created DESC LIMIT ? OFFSET ?`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				p, err := newProductFromStmt(stmt)
				if err != nil {
					return err
				}
				products = append(products, p)
				return nil
			},
			Args: []any{limit, offset},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (d *Db) UpdateProduct(p db.Product) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE products
		SET name = ?, description = ?, price_cents = ?, image_url = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{p.Name, p.Description, p.PriceCents, p.ImageURL, p.ID},
		})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *Db) DeleteProduct(id string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM products WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{id}})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// AddCartItem inserts or bumps a cart line, then refreshes the cached
// cart_count on the user row. The two statements are not transactional;
// the count is display metadata.
func (d *Db) AddCartItem(item db.CartItem) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, product_id) DO UPDATE SET
			quantity = quantity + excluded.quantity`,
		&sqlitex.ExecOptions{
			Args: []any{item.UserID, item.ProductID, item.Quantity},
		})
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return d.refreshCartCount(conn, item.UserID)
}

func (d *Db) RemoveCartItem(userID, productID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`,
		&sqlitex.ExecOptions{Args: []any{userID, productID}})
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return d.refreshCartCount(conn, userID)
}

func (d *Db) ListCartItems(userID string) ([]*db.CartItem, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var items []*db.CartItem
	err = sqlitex.Execute(conn,
		`SELECT user_id, product_id, quantity, added
		FROM cart_items WHERE user_id = ? ORDER BY added ASC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				added, err := db.TimeParse(stmt.GetText("added"))
				if err != nil {
					return fmt.Errorf("error parsing added time: %w", err)
				}
				items = append(items, &db.CartItem{
					UserID:    stmt.GetText("user_id"),
					ProductID: stmt.GetText("product_id"),
					Quantity:  int(stmt.GetInt64("quantity")),
					Added:     added,
				})
				return nil
			},
			Args: []any{userID},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

func (d *Db) ClearCart(userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM cart_items WHERE user_id = ?`,
		&sqlitex.ExecOptions{Args: []any{userID}})
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return d.refreshCartCount(conn, userID)
}

func (d *Db) refreshCartCount(conn *sqlite.Conn, userID string) error {
	err := sqlitex.Execute(conn,
		`UPDATE users
		SET cart_count = (SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE user_id = ?)
		WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{userID, userID}})
	if err != nil {
		return fmt.Errorf("failed to refresh cart count: %w", err)
	}
	return nil
}

func newPurchaseFromStmt(stmt *sqlite.Stmt) (*db.Purchase, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}
	return &db.Purchase{
		ID:             stmt.GetText("id"),
		UserID:         stmt.GetText("user_id"),
		Items:          json.RawMessage(stmt.GetText("items")),
		TotalCents:     stmt.GetInt64("total_cents"),
		TrackingNumber: stmt.GetText("tracking_number"),
		InvoiceNumber:  stmt.GetText("invoice_number"),
		AddressID:      stmt.GetText("address_id"),
		Created:        created,
	}, nil
}

func (d *Db) CreatePurchase(p db.Purchase) (*db.Purchase, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	var created *db.Purchase
	err = sqlitex.Execute(conn,
		`INSERT INTO purchases (id, user_id, items, total_cents, tracking_number, invoice_number, address_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, user_id, items, total_cents, tracking_number, invoice_number, address_id, created`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newPurchaseFromStmt(stmt)
				return err
			},
			Args: []any{p.ID, p.UserID, string(p.Items), p.TotalCents, p.TrackingNumber, p.InvoiceNumber, p.AddressID},
		})
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return created, nil
}

func (d *Db) ListPurchasesByUser(userID string) ([]*db.Purchase, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var purchases []*db.Purchase
	err = sqlitex.Execute(conn,
		`SELECT id, user_id, items, total_cents, tracking_number, invoice_number, address_id, created
		FROM purchases WHERE user_id = ? ORDER BY created DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				p, err := newPurchaseFromStmt(stmt)
				if err != nil {
					return err
				}
				purchases = append(purchases, p)
				return nil
			},
			Args: []any{userID},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func (d *Db) ListPurchases(limit, offset int) ([]*db.Purchase, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var purchases []*db.Purchase
	err = sqlitex.Execute(conn,
		`SELECT id, user_id, items, total_cents, tracking_number, invoice_number, address_id, created
		FROM purchases ORDER BY created DESC LIMIT ? OFFSET ?`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				p, err := newPurchaseFromStmt(stmt)
				if err != nil {
					return err
				}
				purchases = append(purchases, p)
				return nil
			},
			Args: []any{limit, offset},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func newAddressFromStmt(stmt *sqlite.Stmt) (*db.Address, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}
	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}
	return &db.Address{
		ID:      stmt.GetText("id"),
		UserID:  stmt.GetText("user_id"),
		Line1:   stmt.GetText("line1"),
		Line2:   stmt.GetText("line2"),
		City:    stmt.GetText("city"),
		Region:  stmt.GetText("region"),
		Postal:  stmt.GetText("postal"),
		Country: stmt.GetText("country"),
		Created: created,
		Updated: updated,
	}, nil
}

func (d *Db) CreateAddress(a db.Address) (*db.Address, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	var created *db.Address
	err = sqlitex.Execute(conn,
		`INSERT INTO addresses (id, user_id, line1, line2, city, region, postal, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, user_id, line1, line2, city, region, postal, country, created, updated`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newAddressFromStmt(stmt)
				return err
			},
			Args: []any{a.ID, a.UserID, a.Line1, a.Line2, a.City, a.Region, a.Postal, a.Country},
		})
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	return created, nil
}

// UpdateAddress updates an address owned by a.UserID. The ownership check
// is part of the WHERE clause; a foreign id reports not found.
func (d *Db) UpdateAddress(a db.Address) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`UPDATE addresses
		SET line1 = ?, line2 = ?, city = ?, region = ?, postal = ?, country = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ? AND user_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{a.Line1, a.Line2, a.City, a.Region, a.Postal, a.Country, a.ID, a.UserID},
		})
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *Db) DeleteAddress(id, userID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM addresses WHERE id = ? AND user_id = ?`,
		&sqlitex.ExecOptions{Args: []any{id, userID}})
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *Db) ListAddressesByUser(userID string) ([]*db.Address, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var addresses []*db.Address
	err = sqlitex.Execute(conn,
		`SELECT id, user_id, line1, line2, city, region, postal, country, created, updated
		FROM addresses WHERE user_id = ? ORDER BY created ASC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				a, err := newAddressFromStmt(stmt)
				if err != nil {
					return err
				}
				addresses = append(addresses, a)
				return nil
			},
			Args: []any{userID},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// UpsertReview writes the user's review of a product, replacing a previous
// one. One review per (user, product).
func (d *Db) UpsertReview(r db.Review) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO reviews (user_id, product_id, rating, comment)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, product_id) DO UPDATE SET
			rating = excluded.rating,
			comment = excluded.comment,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))`,
		&sqlitex.ExecOptions{
			Args: []any{r.UserID, r.ProductID, r.Rating, r.Comment},
		})
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

func (d *Db) DeleteReview(userID, productID string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM reviews WHERE user_id = ? AND product_id = ?`,
		&sqlitex.ExecOptions{Args: []any{userID, productID}})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *Db) ListReviewsByProduct(productID string, limit, offset int) ([]*db.Review, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var reviews []*db.Review
	err = sqlitex.Execute(conn,
		`SELECT user_id, product_id, rating, comment, created, updated
		FROM reviews WHERE product_id = ? ORDER BY updated DESC LIMIT ? OFFSET ?`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				created, err := db.TimeParse(stmt.GetText("created"))
				if err != nil {
					return fmt.Errorf("error parsing created time: %w", err)
				}
				updated, err := db.TimeParse(stmt.GetText("updated"))
				if err != nil {
					return fmt.Errorf("error parsing updated time: %w", err)
				}
				reviews = append(reviews, &db.Review{
					UserID:    stmt.GetText("user_id"),
					ProductID: stmt.GetText("product_id"),
					Rating:    int(stmt.GetInt64("rating")),
					Comment:   stmt.GetText("comment"),
					Created:   created,
					Updated:   updated,
				})
				return nil
			},
			Args: []any{productID, limit, offset},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
