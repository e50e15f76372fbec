package repos

import (
	"wardrobe/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ImageRepo struct{ db *sqlx.DB }

func NewImageRepo(db *sqlx.DB) *ImageRepo { return &ImageRepo{db: db} }

const imageCols = `id, product_id, image, display_order, active, created_on, last_modified`

// List returns images ordered for display; productID "" lists all.
func (r *ImageRepo) List(productID string) ([]domain.Image, error) {
	out := []domain.Image{}
	if productID == "" {
		err := r.db.Select(&out, `SELECT `+imageCols+` FROM images ORDER BY product_id, display_order`)
		return out, err
	}
	err := r.db.Select(&out, r.db.Rebind(`
		SELECT `+imageCols+` FROM images WHERE product_id = ? ORDER BY display_order
	`), productID)
	return out, err
}

func (r *ImageRepo) Get(id string) (domain.Image, error) {
	var img domain.Image
	err := r.db.Get(&img, r.db.Rebind(`SELECT `+imageCols+` FROM images WHERE id = ?`), id)
	return img, err
}

func (r *ImageRepo) Create(img domain.Image) error {
	ts := now()
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO images(id, product_id, image, display_order, active, created_on, last_modified)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`), img.ID, img.ProductID, img.Image, img.Order, img.Active, ts, ts)
	return err
}

func (r *ImageRepo) Update(img domain.Image) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`
		UPDATE images SET image = ?, display_order = ?, active = ?, last_modified = ? WHERE id = ?
	`), img.Image, img.Order, img.Active, now(), img.ID)
	return affected(res, err)
}

func (r *ImageRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(r.db.Rebind(`DELETE FROM images WHERE id = ?`), id)
	return affected(res, err)
}
