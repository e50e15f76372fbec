package repos

import (
	"database/sql"

	"wardrobe/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow is a cart line joined with its product, category and size variant.
type CartItemRow struct {
	ID              string      `db:"id"`
	ProductID       string      `db:"product_id"`
	ProductName     string      `db:"product_name"`
	ProductImage    string      `db:"product_image"`
	CategoryID      string      `db:"category_id"`
	CategoryName    string      `db:"category_name"`
	CategoryType    string      `db:"category_type"`
	ProductDetailID string      `db:"product_detail_id"`
	Size            domain.Size `db:"size"`
	Quantity        int         `db:"quantity"`
	Price           int64       `db:"price"`
	Stock           int         `db:"stock"`
}

// CartLine is what the total reconciliation needs: the item plus the in-stock
// detail of the same product and size, if any.
type CartLine struct {
	ItemID    string        `db:"id"`
	ProductID string        `db:"product_id"`
	Size      domain.Size   `db:"size"`
	Quantity  int           `db:"quantity"`
	Stock     sql.NullInt64 `db:"stock"`
	Price     sql.NullInt64 `db:"price"`
}

const cartCols = `id, user_id, active, created_on, last_modified`

func (r *CartRepo) Get(cartID string) (domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, r.db.Rebind(`SELECT `+cartCols+` FROM carts WHERE id = ?`), cartID)
	return c, err
}

func (r *CartRepo) ByUser(userID string) (domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, r.db.Rebind(`SELECT `+cartCols+` FROM carts WHERE user_id = ?`), userID)
	return c, err
}

// EnsureCart returns the user's cart id, creating the cart when the user has none.
func (r *CartRepo) EnsureCart(userID string) (string, error) {
	if c, err := r.ByUser(userID); err == nil {
		return c.ID, nil
	} else if !IsNotFound(err) {
		return "", err
	}
	ts := now()
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO carts(id, user_id, active, created_on, last_modified)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`), uuid.NewString(), userID, true, ts, ts)
	if err != nil {
		return "", err
	}
	c, err := r.ByUser(userID)
	return c.ID, err
}

const itemCols = `id, cart_id, product_id, product_detail_id, is_wishlist_item, quantity, size, active, created_on, last_modified`

// FindItem looks up the (product, cart, is_wishlist_item) line; sql.ErrNoRows when absent.
func (r *CartRepo) FindItem(cartID, productID string, wishlist bool) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, r.db.Rebind(`
		SELECT `+itemCols+` FROM cart_items
		WHERE cart_id = ? AND product_id = ? AND is_wishlist_item = ?
	`), cartID, productID, wishlist)
	return it, err
}

// CreateItemIfStock inserts an active cart line only when the detail it points at
// holds at least it.Quantity units. It reports false when the stock check failed or
// a line for the same (product, cart, wishlist) already exists.
func (r *CartRepo) CreateItemIfStock(it domain.CartItem) (bool, error) {
	ts := now()
	res, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO cart_items(id, cart_id, product_id, product_detail_id, is_wishlist_item,
		                       quantity, size, active, created_on, last_modified)
		SELECT ?, ?, ?, ?, CAST(? AS BOOLEAN), CAST(? AS INTEGER), ?, CAST(? AS BOOLEAN), ?, ?
		WHERE (SELECT quantity FROM product_details WHERE id = ?) >= ?
		ON CONFLICT(product_id, is_wishlist_item, cart_id) DO NOTHING
	`), it.ID, it.CartID, it.ProductID, it.ProductDetailID, it.IsWishlistItem,
		it.Quantity, string(it.Size), true, ts, ts,
		it.ProductDetailID, it.Quantity)
	return affected(res, err)
}

// CreateItem inserts a line without any stock check (wishlist entries).
// It reports false when the line already exists.
func (r *CartRepo) CreateItem(it domain.CartItem) (bool, error) {
	ts := now()
	res, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO cart_items(id, cart_id, product_id, product_detail_id, is_wishlist_item,
		                       quantity, size, active, created_on, last_modified)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id, is_wishlist_item, cart_id) DO NOTHING
	`), it.ID, it.CartID, it.ProductID, it.ProductDetailID, it.IsWishlistItem,
		it.Quantity, string(it.Size), true, ts, ts)
	return affected(res, err)
}

// IncrementIfStock adds by units to the line only while the result stays within the
// detail's stock. Check and write are one statement, so concurrent adds cannot overcommit.
func (r *CartRepo) IncrementIfStock(itemID, detailID string, by int) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE cart_items SET quantity = quantity + ?, last_modified = ?
		WHERE id = ? AND quantity + ? <= (SELECT quantity FROM product_details WHERE id = ?)
	`), by, now(), itemID, by, detailID)
	return affected(res, err)
}

// DecrementOrDelete lowers the quantity by one, deleting the line instead when it holds one unit.
func (r *CartRepo) DecrementOrDelete(itemID string) (deleted bool, err error) {
	ok, err := affected(r.db.Exec(r.db.Rebind(`
		UPDATE cart_items SET quantity = quantity - 1, last_modified = ?
		WHERE id = ? AND quantity > 1
	`), now(), itemID))
	if err != nil || ok {
		return false, err
	}
	_, err = r.DeleteItem(itemID)
	return true, err
}

func (r *CartRepo) DeleteItem(itemID string) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM cart_items WHERE id = ?`), itemID)
	return affected(res, err)
}

func (r *CartRepo) DeleteItems(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM cart_items WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteWishlistItem removes the wishlist line for productID.
func (r *CartRepo) DeleteWishlistItem(cartID, productID string) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`
		DELETE FROM cart_items WHERE cart_id = ? AND product_id = ? AND is_wishlist_item = ?
	`), cartID, productID, true)
	return affected(res, err)
}

// Items lists the cart's lines of one kind (active cart or wishlist) for display.
func (r *CartRepo) Items(cartID string, wishlist bool) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, r.db.Rebind(`
	  SELECT ci.id, ci.product_id, p.name AS product_name,
	         COALESCE((SELECT i.image FROM images i WHERE i.product_id = p.id
	                   ORDER BY i.display_order LIMIT 1), '') AS product_image,
	         c.id AS category_id, c.name AS category_name, c.type AS category_type,
	         ci.product_detail_id, ci.size, ci.quantity, pd.price, pd.quantity AS stock
	  FROM cart_items ci
	  JOIN products p ON p.id = ci.product_id
	  JOIN categories c ON c.id = p.category_id
	  JOIN product_details pd ON pd.id = ci.product_detail_id
	  WHERE ci.cart_id = ? AND ci.is_wishlist_item = ?
	  ORDER BY ci.created_on, ci.id
	`), cartID, wishlist)
	return rows, err
}

// Lines returns the active (non-wishlist) lines with the in-stock detail for the same
// product and size left-joined in.
func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	out := []CartLine{}
	err := r.db.Select(&out, r.db.Rebind(`
	  SELECT ci.id, ci.product_id, ci.size, ci.quantity, pd.quantity AS stock, pd.price
	  FROM cart_items ci
	  LEFT JOIN product_details pd
	    ON pd.product_id = ci.product_id AND pd.size = ci.size AND pd.quantity > 0
	  WHERE ci.cart_id = ? AND ci.is_wishlist_item = ?
	  ORDER BY ci.created_on, ci.id
	`), cartID, false)
	return out, err
}
