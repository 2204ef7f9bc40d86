package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty (products/specifications)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo accounts and their vouchers exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  avatar_url TEXT NOT NULL DEFAULT '',
  balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
  total_spent INTEGER NOT NULL DEFAULT 0 CHECK (total_spent >= 0),
  is_member INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price INTEGER NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  category TEXT NOT NULL CHECK (category IN ('Smartphones','Laptops','Audio','Accessories')),
  rating REAL NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS product_specifications(
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  spec_key TEXT NOT NULL,
  spec_value TEXT NOT NULL,
  display_order INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY(product_id, spec_key)
);

-- Vouchers (claimed per user; single-use)
CREATE TABLE IF NOT EXISTS vouchers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  code TEXT NOT NULL,
  kind TEXT NOT NULL CHECK (kind IN ('percentage','fixed','free-shipping')),
  percent INTEGER NOT NULL DEFAULT 0,
  amount INTEGER NOT NULL DEFAULT 0,
  min_purchase INTEGER NOT NULL DEFAULT 0 CHECK (min_purchase >= 0),
  max_discount INTEGER NOT NULL DEFAULT 0,
  description TEXT NOT NULL DEFAULT '',
  is_used INTEGER NOT NULL DEFAULT 0,
  expires_at TEXT NOT NULL DEFAULT '',
  UNIQUE(user_id, code)
);

-- Carts (keyed by the 'sid' cookie)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add INTEGER NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL REFERENCES users(id),
  subtotal INTEGER NOT NULL,
  discount INTEGER NOT NULL DEFAULT 0,
  shipping_fee INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL,
  voucher_code TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
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

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(name,price,stock,category,rating,description,image_url,brand) VALUES
	  ('iPhone 15 Pro Max',18999000,12,'Smartphones',4.9,'A17 Pro, titanium body','/assets/smartphones/iphone-15-pro-max.jpg','Apple'),
	  ('Samsung Galaxy S24 Ultra',19999000,9,'Smartphones',4.8,'Snapdragon 8 Gen 3, S Pen','/assets/smartphones/galaxy-s24-ultra.jpg','Samsung'),
	  ('Google Pixel 8 Pro',14999000,7,'Smartphones',4.7,'Tensor G3, best-in-class camera','/assets/smartphones/pixel-8-pro.jpg','Google'),
	  ('Xiaomi 14',12999000,15,'Smartphones',4.6,'Leica optics, compact flagship','/assets/smartphones/xiaomi-14.jpg','Xiaomi'),
	  ('MacBook Pro 16 M3 Max',42999000,4,'Laptops',4.9,'M3 Max, 36GB unified memory','/assets/laptops/macbook-pro-16.jpg','Apple'),
	  ('ASUS ROG Zephyrus G14',25999000,6,'Laptops',4.7,'Ryzen 9, RTX 4060','/assets/laptops/rog-zephyrus-g14.jpg','ASUS'),
	  ('Dell XPS 15',32999000,5,'Laptops',4.6,'OLED display, Core Ultra 7','/assets/laptops/dell-xps-15.jpg','Dell'),
	  ('Lenovo Yoga Slim 7',24999000,8,'Laptops',4.5,'Thin-and-light, 2.8K display','/assets/laptops/yoga-slim-7.jpg','Lenovo'),
	  ('Sony WH-1000XM5',4999000,20,'Audio',4.8,'Industry-leading noise canceling','/assets/audio/wh-1000xm5.jpg','Sony'),
	  ('AirPods Pro 2',3799000,25,'Audio',4.7,'H2 chip, adaptive transparency','/assets/audio/airpods-pro-2.jpg','Apple'),
	  ('Anker 737 Power Bank',1599000,30,'Accessories',4.6,'24000mAh, 140W output','/assets/accessories/anker-737.jpg','Anker'),
	  ('Logitech MX Master 3S',1499000,0,'Accessories',4.8,'Quiet clicks, 8K DPI','/assets/accessories/mx-master-3s.jpg','Logitech')`)

	tx.MustExec(`INSERT INTO product_specifications(product_id,spec_key,spec_value,display_order)
	  SELECT id,'Chipset','A17 Pro',1 FROM products WHERE name='iPhone 15 Pro Max'`)
	tx.MustExec(`INSERT INTO product_specifications(product_id,spec_key,spec_value,display_order)
	  SELECT id,'RAM','8GB',2 FROM products WHERE name='iPhone 15 Pro Max'`)
	tx.MustExec(`INSERT INTO product_specifications(product_id,spec_key,spec_value,display_order)
	  SELECT id,'Display','6.7" 120Hz',3 FROM products WHERE name='iPhone 15 Pro Max'`)

	return tx.Commit()
}

// seedUsers ensures two demo accounts and their claimed vouchers exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		FullName, Email, Phone, Raw string
		Balance, TotalSpent         int
		IsMember                    bool
	}
	users := []u{
		{FullName: "Andi Pratama", Email: "andi@technest.test", Phone: "+6281234567890", Raw: "Techn3st!", Balance: 25_000_000, TotalSpent: 45_200_000, IsMember: true},
		{FullName: "Sari Dewi", Email: "sari@technest.test", Phone: "+6289876543210", Raw: "Techn3st!", Balance: 5_000_000, TotalSpent: 0, IsMember: false},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		h, _ := bcrypt.GenerateFromPassword([]byte(x.Raw), bcrypt.DefaultCost)
		if _, err := tx.Exec(`
			INSERT INTO users(full_name,email,phone,password_hash,balance,total_spent,is_member)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.FullName, x.Email, x.Phone, string(h), x.Balance, x.TotalSpent, x.IsMember); err != nil {
			return err
		}
	}

	// Claimed vouchers for the first demo account.
	vouchers := []struct {
		Code, Kind, Desc          string
		Percent, Amount, Min, Cap int
	}{
		{Code: "WELCOME10", Kind: "percentage", Desc: "Welcome discount for new users", Percent: 10, Min: 200_000},
		{Code: "BDAY50", Kind: "fixed", Desc: "Birthday special voucher", Amount: 50_000, Min: 500_000},
		{Code: "FREESHIP", Kind: "free-shipping", Desc: "Free shipping on any order"},
		{Code: "TECH20", Kind: "percentage", Desc: "Maximum discount Rp 100,000", Percent: 20, Min: 500_000, Cap: 100_000},
	}
	for _, v := range vouchers {
		if _, err := tx.Exec(`
			INSERT INTO vouchers(user_id,code,kind,percent,amount,min_purchase,max_discount,description)
			SELECT id,?,?,?,?,?,?,? FROM users WHERE email='andi@technest.test'
			ON CONFLICT(user_id,code) DO NOTHING
		`, v.Code, v.Kind, v.Percent, v.Amount, v.Min, v.Cap, v.Desc); err != nil {
			return err
		}
	}

	return tx.Commit()
}
