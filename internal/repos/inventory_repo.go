package repos

import (
	"wardrobe/internal/domain"

	"github.com/jmoiron/sqlx"
)

// InventoryRepo stores product_details: one stock/price row per (product, size).
type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const detailCols = `id, product_id, size, quantity, price, active, created_on, last_modified`

func (r *InventoryRepo) ListByProduct(productID string) ([]domain.ProductDetail, error) {
	out := []domain.ProductDetail{}
	err := r.db.Select(&out, r.db.Rebind(`
		SELECT `+detailCols+` FROM product_details
		WHERE product_id = ?
		ORDER BY CASE size WHEN 'S' THEN 1 WHEN 'M' THEN 2 WHEN 'L' THEN 3
		  WHEN 'XL' THEN 4 WHEN 'XXL' THEN 5 ELSE 6 END
	`), productID)
	return out, err
}

func (r *InventoryRepo) Get(id, productID string) (domain.ProductDetail, error) {
	var d domain.ProductDetail
	err := r.db.Get(&d, r.db.Rebind(`
		SELECT `+detailCols+` FROM product_details WHERE id = ? AND product_id = ?
	`), id, productID)
	return d, err
}

// InStock returns the detail only when it belongs to productID and has quantity > 0.
// Otherwise it returns sql.ErrNoRows.
func (r *InventoryRepo) InStock(id, productID string) (domain.ProductDetail, error) {
	var d domain.ProductDetail
	err := r.db.Get(&d, r.db.Rebind(`
		SELECT `+detailCols+` FROM product_details
		WHERE id = ? AND product_id = ? AND quantity > 0
	`), id, productID)
	return d, err
}

// BySize returns the detail row for (productID, size), or sql.ErrNoRows.
func (r *InventoryRepo) BySize(productID string, size domain.Size) (domain.ProductDetail, error) {
	var d domain.ProductDetail
	err := r.db.Get(&d, r.db.Rebind(`
		SELECT `+detailCols+` FROM product_details WHERE product_id = ? AND size = ?
	`), productID, string(size))
	return d, err
}

// Create inserts d unless the product already has a detail of that size.
func (r *InventoryRepo) Create(d domain.ProductDetail) (bool, error) {
	ts := now()
	res, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO product_details(id, product_id, size, quantity, price, active, created_on, last_modified)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id, size) DO NOTHING
	`), d.ID, d.ProductID, string(d.Size), d.Quantity, d.Price, d.Active, ts, ts)
	return affected(res, err)
}

// Update sets quantity, price and active; size is fixed once created.
func (r *InventoryRepo) Update(d domain.ProductDetail) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE product_details SET quantity = ?, price = ?, active = ?, last_modified = ?
		WHERE id = ? AND product_id = ?
	`), d.Quantity, d.Price, d.Active, now(), d.ID, d.ProductID)
	return affected(res, err)
}

// SetQty overwrites the stock level of a detail.
func (r *InventoryRepo) SetQty(id string, qty int) error {
	_, err := r.db.Exec(r.db.Rebind(`
		UPDATE product_details SET quantity = ?, last_modified = ? WHERE id = ?
	`), qty, now(), id)
	return err
}

func (r *InventoryRepo) Delete(id, productID string) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM product_details WHERE id = ? AND product_id = ?`), id, productID)
	return affected(res, err)
}
