package services

import (
	"context"

	"wardrobe/internal/cache"
	"wardrobe/internal/domain"
	applog "wardrobe/internal/log"
	"wardrobe/internal/repos"
	"wardrobe/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService struct {
	Cats    *repos.CategoryRepo
	Prods   *repos.ProductRepo
	Details *repos.InventoryRepo
	Images  *repos.ImageRepo
	Cache   cache.Store
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, details *repos.InventoryRepo,
	images *repos.ImageRepo, store cache.Store) *CatalogService {
	if store == nil {
		store = cache.Nop{}
	}
	return &CatalogService{Cats: cats, Prods: prods, Details: details, Images: images, Cache: store}
}

// Write payloads. Pointer fields are optional on PATCH; nil leaves the stored value.

type CategoryInput struct {
	Name   *string `json:"name"`
	Type   *string `json:"type"`
	Active *bool   `json:"active"`
}

type ProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Active      *bool   `json:"active"`
}

type DetailInput struct {
	Size     *string `json:"size"`
	Quantity *int    `json:"quantity"`
	Price    *int64  `json:"price"`
	Active   *bool   `json:"active"`
}

type ImageInput struct {
	Product *string `json:"product"`
	Image   *string `json:"image"`
	Order   *int    `json:"order"`
	Active  *bool   `json:"active"`
}

// Read views.

type CategoryView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         domain.CategoryType `json:"type"`
	Active       bool                `json:"active"`
	CreatedOn    string              `json:"created_on"`
	LastModified string              `json:"last_modified"`
}

type ProductSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Active      bool   `json:"active"`
}

type DetailView struct {
	ID       string      `json:"id"`
	Size     domain.Size `json:"size"`
	Quantity int         `json:"quantity"`
	Price    int64       `json:"price"`
	Active   bool        `json:"active"`
}

type ImageView struct {
	ID      string `json:"id"`
	Product string `json:"product"`
	Image   string `json:"image"`
	Order   int    `json:"order"`
	Active  bool   `json:"active"`
}

type ProductView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Active       bool         `json:"active"`
	Category     CategoryView `json:"category"`
	Details      []DetailView `json:"product_detail"`
	Images       []ImageView  `json:"images"`
	CreatedOn    string       `json:"created_on"`
	LastModified string       `json:"last_modified"`
}

func categoryView(c domain.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Type: c.Type, Active: c.Active, CreatedOn: c.CreatedOn, LastModified: c.LastModified}
}

func detailView(d domain.ProductDetail) DetailView {
	return DetailView{ID: d.ID, Size: d.Size, Quantity: d.Quantity, Price: d.Price, Active: d.Active}
}

func imageView(i domain.Image) ImageView {
	return ImageView{ID: i.ID, Product: i.ProductID, Image: i.Image, Order: i.Order, Active: i.Active}
}

// ---- categories ----

func (s *CatalogService) ListCategories() ([]CategoryView, error) {
	cats, err := s.Cats.List()
	if err != nil {
		return nil, internal("list categories", err)
	}
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryView(c))
	}
	return out, nil
}

func (s *CatalogService) GetCategory(id string) (CategoryView, error) {
	c, err := s.category(id)
	if err != nil {
		return CategoryView{}, err
	}
	return categoryView(c), nil
}

func (s *CatalogService) category(id string) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if err != nil {
		if repos.IsNotFound(err) {
			return domain.Category{}, notFound("Category not found")
		}
		return domain.Category{}, internal("find category", err)
	}
	return c, nil
}

func (s *CatalogService) CreateCategory(in CategoryInput) (CategoryView, error) {
	if in.Name == nil {
		return CategoryView{}, validationErr("name is required")
	}
	c := domain.Category{ID: uuid.NewString(), Type: domain.Upperwear, Active: true}
	if err := applyCategory(&c, in); err != nil {
		return CategoryView{}, err
	}
	if err := s.Cats.Create(c); err != nil {
		return CategoryView{}, internal("create category", err)
	}
	return s.GetCategory(c.ID)
}

// UpdateCategory applies in over the stored category. With replace set (PUT) every
// field except active is required.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput, replace bool) (CategoryView, error) {
	if replace && (in.Name == nil || in.Type == nil) {
		return CategoryView{}, validationErr("name and type are required")
	}
	c, err := s.category(id)
	if err != nil {
		return CategoryView{}, err
	}
	if err := applyCategory(&c, in); err != nil {
		return CategoryView{}, err
	}
	if _, err := s.Cats.Update(c); err != nil {
		return CategoryView{}, internal("update category", err)
	}
	s.forgetCategory(ctx, id)
	return s.GetCategory(id)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	s.forgetCategory(ctx, id)
	ok, err := s.Cats.Delete(id)
	if err != nil {
		return internal("delete category", err)
	}
	if !ok {
		return notFound("Category not found")
	}
	return nil
}

func applyCategory(c *domain.Category, in CategoryInput) error {
	if in.Name != nil {
		n, ok := validate.Name(*in.Name)
		if !ok {
			return validationErr("name must be 1-250 characters")
		}
		c.Name = n
	}
	if in.Type != nil {
		t, ok := validate.CategoryType(*in.Type)
		if !ok {
			return validationErr("type must be UPPERWEAR, BOTTOMWEAR or FOOTWEAR")
		}
		c.Type = t
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	return nil
}

// ---- products ----

// ListProducts filters by category id and a name/description keyword; both optional.
func (s *CatalogService) ListProducts(q, categoryID string) ([]ProductSummary, error) {
	if q != "" {
		v, ok := validate.Q(q)
		if !ok {
			return nil, validationErr("invalid search query")
		}
		q = v
	}
	if categoryID != "" {
		if _, ok := validate.ID(categoryID); !ok {
			return nil, validationErr("invalid category id")
		}
	}
	prods, err := s.Prods.Search(q, categoryID)
	if err != nil {
		return nil, internal("list products", err)
	}
	out := make([]ProductSummary, 0, len(prods))
	for _, p := range prods {
		out = append(out, ProductSummary{ID: p.ID, Name: p.Name, Description: p.Description, Category: p.CategoryID, Active: p.Active})
	}
	return out, nil
}

// GetProduct returns the product with its category, size variants and images,
// served from the cache when present.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (ProductView, error) {
	var v ProductView
	hit, err := s.Cache.Get(ctx, cache.ProductKey(id), &v)
	if err != nil {
		applog.L().Warn("cache.get", zap.String("product_id", id), zap.Error(err))
	}
	if hit {
		return v, nil
	}

	p, err := s.product(id)
	if err != nil {
		return ProductView{}, err
	}
	c, err := s.Cats.Get(p.CategoryID)
	if err != nil {
		return ProductView{}, internal("find category", err)
	}
	details, err := s.Details.ListByProduct(id)
	if err != nil {
		return ProductView{}, internal("list product details", err)
	}
	images, err := s.Images.List(id)
	if err != nil {
		return ProductView{}, internal("list images", err)
	}

	v = ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Active:       p.Active,
		Category:     categoryView(c),
		Details:      make([]DetailView, 0, len(details)),
		Images:       make([]ImageView, 0, len(images)),
		CreatedOn:    p.CreatedOn,
		LastModified: p.LastModified,
	}
	for _, d := range details {
		v.Details = append(v.Details, detailView(d))
	}
	for _, i := range images {
		v.Images = append(v.Images, imageView(i))
	}
	if err := s.Cache.Set(ctx, cache.ProductKey(id), v); err != nil {
		applog.L().Warn("cache.set", zap.String("product_id", id), zap.Error(err))
	}
	return v, nil
}

func (s *CatalogService) product(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		if repos.IsNotFound(err) {
			return domain.Product{}, notFound("Product not found")
		}
		return domain.Product{}, internal("find product", err)
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (ProductView, error) {
	if in.Name == nil || in.Category == nil {
		return ProductView{}, validationErr("name and category are required")
	}
	p := domain.Product{ID: uuid.NewString(), Active: true}
	if err := s.applyProduct(&p, in); err != nil {
		return ProductView{}, err
	}
	if err := s.Prods.Create(p); err != nil {
		return ProductView{}, internal("create product", err)
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (ProductView, error) {
	p, err := s.product(id)
	if err != nil {
		return ProductView{}, err
	}
	if err := s.applyProduct(&p, in); err != nil {
		return ProductView{}, err
	}
	if _, err := s.Prods.Update(p); err != nil {
		return ProductView{}, internal("update product", err)
	}
	s.forget(ctx, id)
	return s.GetProduct(ctx, id)
}

// DeleteProduct also removes the product's details, images and every cart line pointing at it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ok, err := s.Prods.Delete(id)
	if err != nil {
		return internal("delete product", err)
	}
	if !ok {
		return notFound("Product not found")
	}
	s.forget(ctx, id)
	return nil
}

func (s *CatalogService) applyProduct(p *domain.Product, in ProductInput) error {
	if in.Name != nil {
		n, ok := validate.Name(*in.Name)
		if !ok {
			return validationErr("name must be 1-250 characters")
		}
		p.Name = n
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		if _, err := s.Cats.Get(*in.Category); err != nil {
			if repos.IsNotFound(err) {
				return validationErr("unknown category")
			}
			return internal("find category", err)
		}
		p.CategoryID = *in.Category
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	return nil
}

// ---- product details ----

func (s *CatalogService) ListDetails(productID string) ([]DetailView, error) {
	if _, err := s.product(productID); err != nil {
		return nil, err
	}
	ds, err := s.Details.ListByProduct(productID)
	if err != nil {
		return nil, internal("list product details", err)
	}
	out := make([]DetailView, 0, len(ds))
	for _, d := range ds {
		out = append(out, detailView(d))
	}
	return out, nil
}

// CreateDetail adds a size variant; a product holds at most one per size.
func (s *CatalogService) CreateDetail(ctx context.Context, productID string, in DetailInput) (DetailView, error) {
	if _, err := s.product(productID); err != nil {
		return DetailView{}, err
	}
	if in.Size == nil || in.Price == nil {
		return DetailView{}, validationErr("size and price are required")
	}
	size, ok := validate.Size(*in.Size)
	if !ok {
		return DetailView{}, validationErr("size must be one of S, M, L, XL, XXL, XXXL")
	}
	if _, err := s.Details.BySize(productID, size); err == nil {
		return DetailView{}, conflict("Size already exists for product")
	} else if !repos.IsNotFound(err) {
		return DetailView{}, internal("find product detail", err)
	}

	d := domain.ProductDetail{ID: uuid.NewString(), ProductID: productID, Size: size, Active: true}
	if err := applyDetail(&d, in); err != nil {
		return DetailView{}, err
	}
	created, err := s.Details.Create(d)
	if err != nil {
		return DetailView{}, internal("create product detail", err)
	}
	if !created {
		return DetailView{}, conflict("Size already exists for product")
	}
	s.forget(ctx, productID)
	return detailView(d), nil
}

// UpdateDetail changes stock, price or active; the size of a variant is fixed.
func (s *CatalogService) UpdateDetail(ctx context.Context, productID, detailID string, in DetailInput) (DetailView, error) {
	d, err := s.Details.Get(detailID, productID)
	if err != nil {
		if repos.IsNotFound(err) {
			return DetailView{}, notFound("Product detail not found")
		}
		return DetailView{}, internal("find product detail", err)
	}
	if in.Size != nil {
		if size, _ := validate.Size(*in.Size); size != d.Size {
			return DetailView{}, validationErr("size cannot be changed")
		}
	}
	if err := applyDetail(&d, in); err != nil {
		return DetailView{}, err
	}
	if _, err := s.Details.Update(d); err != nil {
		return DetailView{}, internal("update product detail", err)
	}
	s.forget(ctx, productID)
	return detailView(d), nil
}

func (s *CatalogService) DeleteDetail(ctx context.Context, productID, detailID string) error {
	ok, err := s.Details.Delete(detailID, productID)
	if err != nil {
		return internal("delete product detail", err)
	}
	if !ok {
		return notFound("Product detail not found")
	}
	s.forget(ctx, productID)
	return nil
}

func applyDetail(d *domain.ProductDetail, in DetailInput) error {
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return validationErr("quantity must not be negative")
		}
		d.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return validationErr("price must not be negative")
		}
		d.Price = *in.Price
	}
	if in.Active != nil {
		d.Active = *in.Active
	}
	return nil
}

// ---- images ----

func (s *CatalogService) ListImages(productID string) ([]ImageView, error) {
	imgs, err := s.Images.List(productID)
	if err != nil {
		return nil, internal("list images", err)
	}
	out := make([]ImageView, 0, len(imgs))
	for _, i := range imgs {
		out = append(out, imageView(i))
	}
	return out, nil
}

func (s *CatalogService) GetImage(id string) (ImageView, error) {
	i, err := s.image(id)
	if err != nil {
		return ImageView{}, err
	}
	return imageView(i), nil
}

func (s *CatalogService) image(id string) (domain.Image, error) {
	i, err := s.Images.Get(id)
	if err != nil {
		if repos.IsNotFound(err) {
			return domain.Image{}, notFound("Image not found")
		}
		return domain.Image{}, internal("find image", err)
	}
	return i, nil
}

func (s *CatalogService) CreateImage(ctx context.Context, in ImageInput) (ImageView, error) {
	if in.Product == nil || in.Image == nil {
		return ImageView{}, validationErr("product and image are required")
	}
	if _, err := s.Prods.Get(*in.Product); err != nil {
		if repos.IsNotFound(err) {
			return ImageView{}, validationErr("unknown product")
		}
		return ImageView{}, internal("find product", err)
	}
	img := domain.Image{ID: uuid.NewString(), ProductID: *in.Product, Active: true}
	if err := applyImage(&img, in); err != nil {
		return ImageView{}, err
	}
	if err := s.Images.Create(img); err != nil {
		return ImageView{}, internal("create image", err)
	}
	s.forget(ctx, img.ProductID)
	return s.GetImage(img.ID)
}

// UpdateImage changes the path, display order or active flag; an image never moves
// to another product.
func (s *CatalogService) UpdateImage(ctx context.Context, id string, in ImageInput) (ImageView, error) {
	img, err := s.image(id)
	if err != nil {
		return ImageView{}, err
	}
	if in.Product != nil && *in.Product != img.ProductID {
		return ImageView{}, validationErr("product cannot be changed")
	}
	if err := applyImage(&img, in); err != nil {
		return ImageView{}, err
	}
	if _, err := s.Images.Update(img); err != nil {
		return ImageView{}, internal("update image", err)
	}
	s.forget(ctx, img.ProductID)
	return s.GetImage(id)
}

func (s *CatalogService) DeleteImage(ctx context.Context, id string) error {
	img, err := s.image(id)
	if err != nil {
		return err
	}
	if _, err := s.Images.Delete(id); err != nil {
		return internal("delete image", err)
	}
	s.forget(ctx, img.ProductID)
	return nil
}

func applyImage(img *domain.Image, in ImageInput) error {
	if in.Image != nil {
		v, ok := validate.Image(*in.Image)
		if !ok {
			return validationErr("image must be a path or URL without spaces")
		}
		img.Image = v
	}
	if in.Order != nil {
		if *in.Order < 0 {
			return validationErr("order must not be negative")
		}
		img.Order = *in.Order
	}
	if in.Active != nil {
		img.Active = *in.Active
	}
	return nil
}

// ---- cache invalidation ----

func (s *CatalogService) forget(ctx context.Context, productIDs ...string) {
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, cache.ProductKey(id))
	}
	if err := s.Cache.Delete(ctx, keys...); err != nil {
		applog.L().Warn("cache.delete", zap.Strings("keys", keys), zap.Error(err))
	}
}

// forgetCategory drops the cached views of every product in the category.
func (s *CatalogService) forgetCategory(ctx context.Context, categoryID string) {
	prods, err := s.Prods.Search("", categoryID)
	if err != nil {
		applog.L().Warn("cache.delete", zap.String("category_id", categoryID), zap.Error(err))
		return
	}
	ids := make([]string, 0, len(prods))
	for _, p := range prods {
		ids = append(ids, p.ID)
	}
	s.forget(ctx, ids...)
}
