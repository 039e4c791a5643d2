package repos

import (
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	"threadline/internal/domain"
)

// ErrNotFound is returned when a product id has no row.
var ErrNotFound = errors.New("product not found")

// ProductRepo is the catalog store boundary: list plus admin writes.
type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, description, category, subcategory, price, original_price,
  image, extra_images_json, sizes_json, rating, reviews,
  created_at, COALESCE(updated_at,'') AS updated_at`

// List returns the full catalog ordered by id.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

// Create assigns id = max(existing)+1 and inserts. The id can repeat one
// freed by deleting the highest-id product; nothing else persists product
// references, so reuse is harmless here.
func (r *ProductRepo) Create(in domain.ProductInput) (domain.Product, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.Get(&id, `SELECT COALESCE(MAX(id),0)+1 FROM products`); err != nil {
		return domain.Product{}, errors.Wrap(err, "next id")
	}
	_, err = tx.Exec(`
	  INSERT INTO products
	    (id, name, description, category, subcategory, price, original_price,
	     image, extra_images_json, sizes_json, rating, reviews, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, id, in.Name, in.Description, in.Category, in.Subcategory, in.Price, in.OriginalPrice,
		in.Image, domain.EncodeStrings(in.ExtraImages), domain.EncodeStrings(in.Sizes),
		in.Rating, in.Reviews)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "insert product")
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

// Update rewrites every mutable field in place; the id never changes.
func (r *ProductRepo) Update(id int64, in domain.ProductInput) error {
	res, err := r.db.Exec(`
	  UPDATE products SET
	    name = ?, description = ?, category = ?, subcategory = ?,
	    price = ?, original_price = ?, image = ?, extra_images_json = ?,
	    sizes_json = ?, rating = ?, reviews = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, in.Name, in.Description, in.Category, in.Subcategory, in.Price, in.OriginalPrice,
		in.Image, domain.EncodeStrings(in.ExtraImages), domain.EncodeStrings(in.Sizes),
		in.Rating, in.Reviews, id)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
