package repos

import (
	"fmt"
	"time"

	applog "wardrobe/internal/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB connects with driver "sqlite" or "pgx", creates the schema and optionally seeds demo data.
func OpenDB(driver, dsn string, seed bool) (*sqlx.DB, error) {
	switch driver {
	case "", "sqlite":
		driver = "sqlite"
	case "pgx", "postgres":
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one connection: ":memory:" is per connection and sqlite serializes writers anyway
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			return nil, err
		}
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seed {
		if err := seedIfEmpty(db); err != nil {
			return nil, err
		}
		if err := seedUsers(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Fixed-width so that timestamps sort as strings.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func now() string { return time.Now().UTC().Format(tsLayout) }

// Portable between SQLite and PostgreSQL.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_on TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL DEFAULT 'UPPERWEAR' CHECK (type IN ('UPPERWEAR','BOTTOMWEAR','FOOTWEAR')),
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_on TEXT NOT NULL DEFAULT '',
  last_modified TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_on TEXT NOT NULL DEFAULT '',
  last_modified TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
	`CREATE TABLE IF NOT EXISTS product_details(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  size TEXT NOT NULL DEFAULT 'S' CHECK (size IN ('S','M','L','XL','XXL','XXXL')),
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  price BIGINT NOT NULL CHECK (price >= 0),
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_on TEXT NOT NULL DEFAULT '',
  last_modified TEXT NOT NULL DEFAULT '',
  UNIQUE (product_id, size)
)`,
	`CREATE INDEX IF NOT EXISTS idx_product_details_product ON product_details(product_id)`,
	`CREATE TABLE IF NOT EXISTS images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  image TEXT NOT NULL,
  display_order INTEGER NOT NULL DEFAULT 0,
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_on TEXT NOT NULL DEFAULT '',
  last_modified TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_images_product ON images(product_id)`,
	`CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_on TEXT NOT NULL DEFAULT '',
  last_modified TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  product_detail_id TEXT NOT NULL REFERENCES product_details(id) ON DELETE CASCADE,
  is_wishlist_item BOOLEAN NOT NULL DEFAULT TRUE,
  quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
  size TEXT NOT NULL DEFAULT 'S' CHECK (size IN ('S','M','L','XL','XXL','XXXL')),
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_on TEXT NOT NULL DEFAULT '',
  last_modified TEXT NOT NULL DEFAULT '',
  UNIQUE (product_id, is_wishlist_item, cart_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id)`,
}

func ensureSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.L().Info("db.seed", zap.String("driver", db.DriverName()))

	ts := now()
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO categories(id,name,type,created_on,last_modified) VALUES
		  ('cat-tops','Tops','UPPERWEAR',?,?),
		  ('cat-denim','Denim','BOTTOMWEAR',?,?),
		  ('cat-sneakers','Sneakers','FOOTWEAR',?,?)`, []any{ts, ts, ts, ts, ts, ts}},
		{`INSERT INTO products(id,name,description,category_id,created_on,last_modified) VALUES
		  ('tee-001','Classic Crew Tee','Heavyweight cotton tee','cat-tops',?,?),
		  ('jeans-001','Slim Selvedge Jeans','Raw indigo denim','cat-denim',?,?),
		  ('shoe-001','Canvas Low Top','Vulcanised sole','cat-sneakers',?,?)`, []any{ts, ts, ts, ts, ts, ts}},
		{`INSERT INTO product_details(id,product_id,size,quantity,price,created_on,last_modified) VALUES
		  ('tee-001-s','tee-001','S',10,1999,?,?),
		  ('tee-001-m','tee-001','M',5,1999,?,?),
		  ('tee-001-l','tee-001','L',0,1999,?,?),
		  ('jeans-001-m','jeans-001','M',3,8900,?,?),
		  ('jeans-001-xl','jeans-001','XL',1,9400,?,?),
		  ('shoe-001-l','shoe-001','L',7,5500,?,?)`, []any{ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts, ts}},
		{`INSERT INTO images(id,product_id,image,display_order,created_on,last_modified) VALUES
		  ('img-tee-1','tee-001','product_img/tee-001-front.jpg',1,?,?),
		  ('img-tee-2','tee-001','product_img/tee-001-back.jpg',2,?,?),
		  ('img-jeans-1','jeans-001','product_img/jeans-001.jpg',1,?,?)`, []any{ts, ts, ts, ts, ts, ts}},
	}
	for _, s := range stmts {
		if _, err := tx.Exec(tx.Rebind(s.q), s.args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedUsers ensures the demo users and their carts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Hash string
	}
	mk := func(id, email, name, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@wardrobe.test", "Alice", "Passw0rd!"),
		mk("u-bob", "bob@wardrobe.test", "Bob", "Passw0rd!"),
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	for _, x := range users {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO users(id,email,name,password_hash,created_on)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`), x.ID, x.Email, x.Name, x.Hash, ts); err != nil {
			return err
		}
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO carts(id,user_id,created_on,last_modified)
			VALUES(?,?,?,?)
			ON CONFLICT(user_id) DO NOTHING
		`), "cart-"+x.ID, x.ID, ts, ts); err != nil {
			return err
		}
	}

	return tx.Commit()
}
