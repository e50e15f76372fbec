package domain

type CategoryType string

const (
	Upperwear  CategoryType = "UPPERWEAR"
	Bottomwear CategoryType = "BOTTOMWEAR"
	Footwear   CategoryType = "FOOTWEAR"
)

func (t CategoryType) Valid() bool {
	switch t {
	case Upperwear, Bottomwear, Footwear:
		return true
	}
	return false
}

type Size string

const (
	SizeS    Size = "S"
	SizeM    Size = "M"
	SizeL    Size = "L"
	SizeXL   Size = "XL"
	SizeXXL  Size = "XXL"
	SizeXXXL Size = "XXXL"
)

var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeXXXL}

func (s Size) Valid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

type Category struct {
	ID           string       `db:"id"`
	Name         string       `db:"name"`
	Type         CategoryType `db:"type"`
	Active       bool         `db:"active"`
	CreatedOn    string       `db:"created_on"`
	LastModified string       `db:"last_modified"`
}

type Product struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	CategoryID   string `db:"category_id"`
	Active       bool   `db:"active"`
	CreatedOn    string `db:"created_on"`
	LastModified string `db:"last_modified"`
}

// ProductDetail is one size variant of a product with its own stock and price.
type ProductDetail struct {
	ID           string `db:"id"`
	ProductID    string `db:"product_id"`
	Size         Size   `db:"size"`
	Quantity     int    `db:"quantity"`
	Price        int64  `db:"price"` // minor units
	Active       bool   `db:"active"`
	CreatedOn    string `db:"created_on"`
	LastModified string `db:"last_modified"`
}

type Image struct {
	ID           string `db:"id"`
	ProductID    string `db:"product_id"`
	Image        string `db:"image"`
	Order        int    `db:"display_order"`
	Active       bool   `db:"active"`
	CreatedOn    string `db:"created_on"`
	LastModified string `db:"last_modified"`
}

type Cart struct {
	ID           string `db:"id"`
	UserID       string `db:"user_id"`
	Active       bool   `db:"active"`
	CreatedOn    string `db:"created_on"`
	LastModified string `db:"last_modified"`
}

// CartItem is unique per (product, cart, is_wishlist_item).
type CartItem struct {
	ID              string `db:"id"`
	CartID          string `db:"cart_id"`
	ProductID       string `db:"product_id"`
	ProductDetailID string `db:"product_detail_id"`
	IsWishlistItem  bool   `db:"is_wishlist_item"`
	Quantity        int    `db:"quantity"`
	Size            Size   `db:"size"`
	Active          bool   `db:"active"`
	CreatedOn       string `db:"created_on"`
	LastModified    string `db:"last_modified"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
	Size   Size   `json:"size,omitempty"`
}
