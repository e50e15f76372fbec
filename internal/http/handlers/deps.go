package handlers

import (
	"wardrobe/internal/cache"
	"wardrobe/internal/repos"
	"wardrobe/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Users *services.UserService

	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	ImageHandler     *ImageHandler
	CartHandler      *CartHandler
	WishlistHandler  *WishlistHandler
	UserHandler      *UserHandler
}

func NewDeps(db *sqlx.DB, store cache.Store) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	imgRepo := repos.NewImageRepo(db)
	cartRepo := repos.NewCartRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, invRepo, imgRepo, store)
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(cartRepo, invRepo, prodRepo)
	wishSvc := services.NewWishlistService(cartRepo, invRepo)
	userSvc := services.NewUserService(userRepo)

	return &Deps{
		Users:            userSvc,
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		ImageHandler:     &ImageHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		WishlistHandler:  &WishlistHandler{Wish: wishSvc},
		UserHandler:      &UserHandler{Users: userSvc},
	}
}
