package repos

import (
	"technest/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, stock, category, rating, description, image_url, brand, COALESCE(created_at,'') AS created_at`

// List returns the full catalog in insertion order; filtering and sorting
// happen in the catalog pipeline, not in SQL.
func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id int) (domain.Product, error) {
	var p domain.Product
	if err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	specs := []domain.ProductSpec{}
	if err := r.db.Select(&specs, `
	  SELECT spec_key, spec_value FROM product_specifications
	  WHERE product_id = ? ORDER BY display_order`, id); err == nil {
		p.Specifications = specs
	}
	return p, nil
}

func (r *ProductRepo) Create(p domain.Product) (int, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name,price,stock,category,rating,description,image_url,brand)
	  VALUES(?,?,?,?,?,?,?,?)`,
		p.Name, p.Price, p.Stock, p.Category, p.Rating, p.Description, p.Image, p.Brand)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// InsertSpec writes one key-value spec row; empty values are skipped.
func (r *ProductRepo) InsertSpec(productID int, key, value string, order int) error {
	if value == "" {
		return nil
	}
	_, err := r.db.Exec(`
	  INSERT INTO product_specifications(product_id,spec_key,spec_value,display_order)
	  VALUES(?,?,?,?)
	  ON CONFLICT(product_id,spec_key) DO UPDATE SET spec_value=excluded.spec_value`,
		productID, key, value, order)
	return err
}

func (r *ProductRepo) Update(p domain.Product) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products SET name=?, price=?, stock=?, category=?, rating=?, description=?, image_url=?, brand=?
	  WHERE id=?`,
		p.Name, p.Price, p.Stock, p.Category, p.Rating, p.Description, p.Image, p.Brand, p.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProductRepo) Delete(id int) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DecrementStock reduces stock by qty inside the checkout transaction,
// refusing to go below zero.
func (r *ProductRepo) DecrementStock(tx *sqlx.Tx, id, qty int) (bool, error) {
	res, err := tx.Exec(`UPDATE products SET stock = stock - ? WHERE id=? AND stock >= ?`, qty, id, qty)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
