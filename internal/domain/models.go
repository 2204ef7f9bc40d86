package domain

// Categories is the fixed storefront category set. "All" is a filter
// sentinel, not a category a product can carry.
var Categories = []string{"Smartphones", "Laptops", "Audio", "Accessories"}

const CategoryAll = "All"

// ValidCategory reports whether s names a real product category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Price       int     `db:"price" json:"price"` // Rupiah, no subunits
	Stock       int     `db:"stock" json:"stock"`
	Category    string  `db:"category" json:"category"`
	Rating      float64 `db:"rating" json:"rating"` // 0.0 .. 5.0
	Description string  `db:"description" json:"description,omitempty"`
	Image       string  `db:"image_url" json:"image,omitempty"`
	Brand       string  `db:"brand" json:"brand,omitempty"`
	CreatedAt   string  `db:"created_at" json:"created_at"`

	Specifications []ProductSpec `json:"specifications,omitempty"`
}

// ProductSpec is one key-value specification row shown on the detail page.
type ProductSpec struct {
	Key   string `db:"spec_key" json:"key"`
	Value string `db:"spec_value" json:"value"`
}

type Order struct {
	ID        string `db:"id" json:"id"`
	UserID    int    `db:"user_id" json:"user_id"`
	Subtotal  int    `db:"subtotal" json:"subtotal"`
	Discount  int    `db:"discount" json:"discount"`
	Shipping  int    `db:"shipping_fee" json:"shipping_fee"`
	Total     int    `db:"total" json:"total"`
	Voucher   string `db:"voucher_code" json:"voucher_code,omitempty"`
	Status    string `db:"status" json:"status"` // PLACED | SHIPPED | DELIVERED | CANCELED
	CreatedAt string `db:"created_at" json:"created_at"`

	Items []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	OrderID   string `db:"order_id" json:"-"`
	ProductID int    `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Qty       int    `db:"qty" json:"quantity"`
	UnitPrice int    `db:"unit_price" json:"unit_price"`
}
