package services

import (
	"net/http"

	"wardrobe/internal/domain"
	applog "wardrobe/internal/log"
	"wardrobe/internal/repos"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Action string

const (
	ActionAdd         Action = "add"
	ActionRemove      Action = "remove"
	ActionDelete      Action = "delete"
	ActionAddQuantity Action = "add_quantity"
)

const (
	MsgRequiredFields = "Required product_detail, product and action."
	MsgBagUpdated     = "Bag Updated"
	MsgProductAdded   = "Cart Updated (product added)"
	MsgStockLimit     = "Quantity in bag reached stock quantity"
	MsgProductRemoved = "Cart Updated (product removed)"
	MsgProductDeleted = "Bag Updated (product deleted)"
	MsgBadRequest     = "Bad request"
	MsgCartNotFound   = "Cart not found"
)

// MutationRequest is the PATCH /cart/:id payload.
type MutationRequest struct {
	Action        Action `json:"action"`
	Product       string `json:"product"`
	ProductDetail string `json:"product_detail"`
	Quantity      *int   `json:"quantity,omitempty"`
}

// Result is what every cart operation answers with, independent of transport.
// Status is 200 on success and 400 when the stock limit stopped the mutation.
type Result struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ProductRef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Image    string      `json:"image,omitempty"`
	Category CategoryRef `json:"category"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type DetailRef struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type CartItemView struct {
	ID            string      `json:"id"`
	Product       ProductRef  `json:"product"`
	ProductDetail DetailRef   `json:"product_detail"`
	Size          domain.Size `json:"size"`
	Quantity      int         `json:"quantity"`
}

type CartView struct {
	ID        string         `json:"id"`
	Items     []CartItemView `json:"cart_item"`
	CartTotal int64          `json:"cart_total"`
}

type CartService struct {
	Carts   *repos.CartRepo
	Details *repos.InventoryRepo
	Prods   *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, details *repos.InventoryRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Details: details, Prods: prods}
}

// Mutate resolves the product and size variant named by req and applies req.Action
// to the caller's cart line for that product.
func (s *CartService) Mutate(userID, cartID string, req MutationRequest) (*Result, error) {
	if req.Product == "" || req.ProductDetail == "" || req.Action == "" {
		return nil, validationErr(MsgRequiredFields)
	}
	qty := 1
	switch req.Action {
	case ActionAdd, ActionRemove, ActionDelete:
	case ActionAddQuantity:
		if req.Quantity == nil || *req.Quantity < 1 {
			return nil, validationErr("quantity must be at least 1 for add_quantity")
		}
		qty = *req.Quantity
	default:
		return nil, validationErr("Unknown action " + string(req.Action))
	}

	cart, err := s.owned(userID, cartID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Prods.Get(req.Product); err != nil {
		if repos.IsNotFound(err) {
			return nil, notInStock()
		}
		return nil, internal("find product", err)
	}
	detail, err := s.Details.InStock(req.ProductDetail, req.Product)
	if err != nil {
		if repos.IsNotFound(err) {
			return nil, notInStock()
		}
		return nil, internal("find product detail", err)
	}

	item, err := s.Carts.FindItem(cart.ID, req.Product, false)
	switch {
	case repos.IsNotFound(err):
		created, err := s.Carts.CreateItemIfStock(domain.CartItem{
			ID:              uuid.NewString(),
			CartID:          cart.ID,
			ProductID:       req.Product,
			ProductDetailID: detail.ID,
			Quantity:        qty,
			Size:            detail.Size,
		})
		if err != nil {
			return nil, internal("create cart item", err)
		}
		if created {
			return s.result(cart.ID, http.StatusOK, MsgBagUpdated)
		}
		// either the stock is below qty or a concurrent request created the line first
		item, err = s.Carts.FindItem(cart.ID, req.Product, false)
		if repos.IsNotFound(err) {
			return s.result(cart.ID, http.StatusBadRequest, MsgStockLimit)
		}
		if err != nil {
			return nil, internal("find cart item", err)
		}
	case err != nil:
		return nil, internal("find cart item", err)
	}

	return s.apply(cart.ID, item, detail, req.Action, qty)
}

func (s *CartService) apply(cartID string, item domain.CartItem, detail domain.ProductDetail, action Action, qty int) (*Result, error) {
	if item.Size != detail.Size {
		return nil, badRequest(MsgBadRequest)
	}
	switch action {
	case ActionAdd, ActionAddQuantity:
		ok, err := s.Carts.IncrementIfStock(item.ID, detail.ID, qty)
		if err != nil {
			return nil, internal("increment cart item", err)
		}
		if !ok {
			return s.result(cartID, http.StatusBadRequest, MsgStockLimit)
		}
		return s.result(cartID, http.StatusOK, MsgProductAdded)
	case ActionRemove:
		if _, err := s.Carts.DecrementOrDelete(item.ID); err != nil {
			return nil, internal("decrement cart item", err)
		}
		return s.result(cartID, http.StatusOK, MsgProductRemoved)
	default:
		if _, err := s.Carts.DeleteItem(item.ID); err != nil {
			return nil, internal("delete cart item", err)
		}
		return s.result(cartID, http.StatusOK, MsgProductDeleted)
	}
}

func (s *CartService) result(cartID string, status int, msg string) (*Result, error) {
	v, err := s.View(cartID)
	if err != nil {
		return nil, err
	}
	return &Result{Data: v, Status: status, Message: msg}, nil
}

func (s *CartService) owned(userID, cartID string) (domain.Cart, error) {
	c, err := s.Carts.Get(cartID)
	if err != nil {
		if repos.IsNotFound(err) {
			return domain.Cart{}, notFound(MsgCartNotFound)
		}
		return domain.Cart{}, internal("find cart", err)
	}
	if c.UserID != userID {
		return domain.Cart{}, notFound(MsgCartNotFound)
	}
	return c, nil
}

// ComputeTotal prices the active lines against the in-stock detail of the same product
// and size. Lines with no such detail are returned as evicted and excluded; lines asking
// for more than the stock contribute nothing.
func ComputeTotal(lines []repos.CartLine) (total int64, evicted []string) {
	for _, l := range lines {
		if !l.Stock.Valid {
			evicted = append(evicted, l.ItemID)
			continue
		}
		if l.Stock.Int64-int64(l.Quantity) >= 0 {
			total += l.Price.Int64 * int64(l.Quantity)
		}
	}
	return total, evicted
}

// Total reconciles the cart: evicted lines are deleted before the total is returned.
func (s *CartService) Total(cartID string) (int64, error) {
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return 0, internal("load cart lines", err)
	}
	total, evicted := ComputeTotal(lines)
	if len(evicted) > 0 {
		n, err := s.Carts.DeleteItems(evicted)
		if err != nil {
			return 0, internal("evict cart items", err)
		}
		applog.L().Info("cart.evict", zap.String("cart_id", cartID), zap.Int64("deleted", n), zap.Strings("items", evicted))
	}
	return total, nil
}

// View returns the cart's non-wishlist lines and its reconciled total.
func (s *CartService) View(cartID string) (CartView, error) {
	total, err := s.Total(cartID)
	if err != nil {
		return CartView{}, err
	}
	rows, err := s.Carts.Items(cartID, false)
	if err != nil {
		return CartView{}, internal("load cart items", err)
	}
	items := make([]CartItemView, 0, len(rows))
	for _, r := range rows {
		items = append(items, itemView(r))
	}
	return CartView{ID: cartID, Items: items, CartTotal: total}, nil
}

// Get returns the view of cartID when it belongs to userID.
func (s *CartService) Get(userID, cartID string) (CartView, error) {
	c, err := s.owned(userID, cartID)
	if err != nil {
		return CartView{}, err
	}
	return s.View(c.ID)
}

// List returns the caller's carts; there is exactly one per user.
func (s *CartService) List(userID string) ([]CartView, error) {
	id, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return nil, internal("ensure cart", err)
	}
	v, err := s.View(id)
	if err != nil {
		return nil, err
	}
	return []CartView{v}, nil
}

func itemView(r repos.CartItemRow) CartItemView {
	return CartItemView{
		ID: r.ID,
		Product: ProductRef{
			ID:    r.ProductID,
			Name:  r.ProductName,
			Image: r.ProductImage,
			Category: CategoryRef{
				ID:   r.CategoryID,
				Name: r.CategoryName,
				Type: r.CategoryType,
			},
		},
		ProductDetail: DetailRef{ID: r.ProductDetailID, Price: r.Price, Quantity: r.Stock},
		Size:          r.Size,
		Quantity:      r.Quantity,
	}
}
