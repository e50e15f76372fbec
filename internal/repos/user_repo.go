package repos

import (
	"wardrobe/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, r.DB.Rebind(`SELECT id,email,name,password_hash,created_on FROM users WHERE id=?`), id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, r.DB.Rebind(`SELECT id,email,name,password_hash,created_on FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateWithCart inserts the user and its cart in one transaction.
func (r *UserRepo) CreateWithCart(u domain.User, cartID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	if _, err := tx.Exec(tx.Rebind(`
		INSERT INTO users(id,email,name,password_hash,created_on) VALUES(?,?,?,?,?)
	`), u.ID, u.Email, u.Name, u.Hash, ts); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`
		INSERT INTO carts(id,user_id,active,created_on,last_modified) VALUES(?,?,?,?,?)
	`), cartID, u.ID, true, ts, ts); err != nil {
		return err
	}
	return tx.Commit()
}
