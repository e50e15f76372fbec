package services

import (
	"wardrobe/internal/domain"
	"wardrobe/internal/repos"

	"github.com/google/uuid"
)

// WishlistService keeps wishlist entries as cart items flagged is_wishlist_item.
type WishlistService struct {
	Carts   *repos.CartRepo
	Details *repos.InventoryRepo
}

func NewWishlistService(carts *repos.CartRepo, details *repos.InventoryRepo) *WishlistService {
	return &WishlistService{Carts: carts, Details: details}
}

type WishlistRequest struct {
	Product       string `json:"product"`
	ProductDetail string `json:"product_detail"`
}

// Save adds the product to the wishlist; saving it twice is a no-op.
// Sold-out sizes can be saved.
func (s *WishlistService) Save(userID string, req WishlistRequest) error {
	if req.Product == "" || req.ProductDetail == "" {
		return validationErr("Required product_detail and product.")
	}
	d, err := s.Details.Get(req.ProductDetail, req.Product)
	if err != nil {
		if repos.IsNotFound(err) {
			return notFound("Product not found")
		}
		return internal("find product detail", err)
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return internal("ensure cart", err)
	}
	_, err = s.Carts.CreateItem(domain.CartItem{
		ID:              uuid.NewString(),
		CartID:          cartID,
		ProductID:       d.ProductID,
		ProductDetailID: d.ID,
		IsWishlistItem:  true,
		Quantity:        1,
		Size:            d.Size,
	})
	if err != nil {
		return internal("save wishlist item", err)
	}
	return nil
}

func (s *WishlistService) Unsave(userID, productID string) error {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return internal("ensure cart", err)
	}
	ok, err := s.Carts.DeleteWishlistItem(cartID, productID)
	if err != nil {
		return internal("remove wishlist item", err)
	}
	if !ok {
		return notFound("Product not in wishlist")
	}
	return nil
}

func (s *WishlistService) List(userID string) ([]CartItemView, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return nil, internal("ensure cart", err)
	}
	rows, err := s.Carts.Items(cartID, true)
	if err != nil {
		return nil, internal("list wishlist", err)
	}
	out := make([]CartItemView, 0, len(rows))
	for _, r := range rows {
		out = append(out, itemView(r))
	}
	return out, nil
}
