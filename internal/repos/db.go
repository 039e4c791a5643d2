package repos

import (
	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"threadline/internal/domain"
	applog "threadline/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping sqlite")
	}

	if err := ensureSchema(db); err != nil {
		return nil, errors.Wrap(err, "ensure schema")
	}
	// Seed a demo catalog if the store is empty (idempotent).
	if err := seedIfEmpty(db); err != nil {
		return nil, errors.Wrap(err, "seed catalog")
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL CHECK (category IN ('tees','hoodies','pants','sneakers','accessories')),
  subcategory TEXT NOT NULL DEFAULT '',
  price INTEGER NOT NULL CHECK (price > 0),
  original_price INTEGER NOT NULL DEFAULT 0 CHECK (original_price = 0 OR original_price >= price),
  image TEXT NOT NULL,
  extra_images_json TEXT NOT NULL DEFAULT '',
  sizes_json TEXT NOT NULL DEFAULT '',
  rating REAL NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
  reviews INTEGER NOT NULL DEFAULT 0 CHECK (reviews >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_price    ON products(price);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.L().Info("seeding demo catalog")

	seed := []domain.ProductInput{
		{
			Name: "Box Logo Tee", Description: "Heavyweight cotton tee with the front box print.",
			Category: domain.CategoryTees, Subcategory: "graphic",
			Price: 500, OriginalPrice: 650,
			Image: "/media/seed/box-logo-tee.jpg",
			Sizes: []string{"S", "M", "L", "XL"},
			Rating: 4.6, Reviews: 38,
		},
		{
			Name: "Washed Black Tee", Description: "Garment-dyed basic, boxy fit.",
			Category: domain.CategoryTees,
			Price: 300,
			Image: "/media/seed/washed-black-tee.jpg",
			Sizes: []string{"S", "M", "L"},
			Rating: 4.2, Reviews: 17,
		},
		{
			Name: "Zip Hoodie", Description: "Fleece-lined zip-through hoodie.",
			Category: domain.CategoryHoodies, Subcategory: "zip",
			Price: 1500,
			Image: "/media/seed/zip-hoodie.jpg",
			Sizes: []string{"M", "L", "XL"},
			Rating: 4.8, Reviews: 52,
		},
		{
			Name: "Cargo Pants", Description: "Six-pocket ripstop cargos.",
			Category: domain.CategoryPants, Subcategory: "cargo",
			Price: 1200, OriginalPrice: 1400,
			Image: "/media/seed/cargo-pants.jpg",
			Sizes: []string{"30", "32", "34"},
			Rating: 4.4, Reviews: 24,
		},
		{
			Name: "Court Low Sneakers", Description: "Cupsole low-tops, gum outsole.",
			Category: domain.CategorySneakers,
			Price: 2200,
			Image: "/media/seed/court-low.jpg",
			Sizes: []string{"40", "41", "42", "43"},
			Rating: 4.1, Reviews: 9,
		},
		{
			Name: "Canvas Tote", Description: "12oz canvas tote, inner pocket.",
			Category: domain.CategoryAccessories,
			Price: 450,
			Image: "/media/seed/canvas-tote.jpg",
			Rating: 4.0, Reviews: 6,
		},
	}

	repo := NewProductRepo(db)
	for _, in := range seed {
		if _, err := repo.Create(in); err != nil {
			return err
		}
	}
	return nil
}
