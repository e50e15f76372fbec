package repos

import (
	"wardrobe/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, name, type, active, created_on, last_modified`

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, r.db.Rebind(`SELECT `+categoryCols+` FROM categories WHERE id = ?`), id)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	ts := now()
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO categories(id, name, type, active, created_on, last_modified)
		VALUES(?, ?, ?, ?, ?, ?)
	`), c.ID, c.Name, string(c.Type), c.Active, ts, ts)
	return err
}

// Update returns false when no row matched id.
func (r *CategoryRepo) Update(c domain.Category) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE categories SET name = ?, type = ?, active = ?, last_modified = ? WHERE id = ?
	`), c.Name, string(c.Type), c.Active, now(), c.ID)
	return affected(res, err)
}

// Delete cascades to the category's products and everything they own.
func (r *CategoryRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	return affected(res, err)
}
