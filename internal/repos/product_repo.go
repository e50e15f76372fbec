package repos

import (
	"strings"

	"wardrobe/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, COALESCE(description,'') AS description, category_id, active, created_on, last_modified`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, r.db.Rebind(`SELECT `+productCols+` FROM products WHERE id = ?`), id)
	return p, err
}

// Search lists products, optionally narrowed to a category and a name/description keyword.
func (r *ProductRepo) Search(q, catID string) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if q != "" {
		q = strings.ToLower(q)
		where += ` AND (LOWER(name) LIKE ? OR LOWER(COALESCE(description,'')) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}

	out := []domain.Product{}
	err := r.db.Select(&out, r.db.Rebind(`SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY name`), args...)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	ts := now()
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO products(id, name, description, category_id, active, created_on, last_modified)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.Name, p.Description, p.CategoryID, p.Active, ts, ts)
	return err
}

func (r *ProductRepo) Update(p domain.Product) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE products SET name = ?, description = ?, category_id = ?, active = ?, last_modified = ?
		WHERE id = ?
	`), p.Name, p.Description, p.CategoryID, p.Active, now(), p.ID)
	return affected(res, err)
}

// Delete cascades to details, images and any cart items referencing the product.
func (r *ProductRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	return affected(res, err)
}
