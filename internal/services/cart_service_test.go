package services_test

import (
	"database/sql"
	"sync"
	"testing"

	"wardrobe/internal/domain"
	applog "wardrobe/internal/log"
	"wardrobe/internal/repos"
	"wardrobe/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	alice     = "u-alice"
	aliceCart = "cart-u-alice"
	bobCart   = "cart-u-bob"
)

type cartFixture struct {
	db   *sqlx.DB
	svc  *services.CartService
	cart *repos.CartRepo
	inv  *repos.InventoryRepo
	prod *repos.ProductRepo
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	db := memdb(t)
	f := &cartFixture{
		db:   db,
		cart: repos.NewCartRepo(db),
		inv:  repos.NewInventoryRepo(db),
		prod: repos.NewProductRepo(db),
	}
	f.svc = services.NewCartService(f.cart, f.inv, f.prod)
	return f
}

// addProduct creates product id in the seeded tops category with one size variant "<id>-<size>".
func (f *cartFixture) addProduct(t *testing.T, id string, size domain.Size, qty int, price int64) string {
	t.Helper()
	require.NoError(t, f.prod.Create(domain.Product{ID: id, Name: id, CategoryID: "cat-tops", Active: true}))
	return f.addDetail(t, id, size, qty, price)
}

func (f *cartFixture) addDetail(t *testing.T, productID string, size domain.Size, qty int, price int64) string {
	t.Helper()
	detailID := productID + "-" + string(size)
	_, err := f.inv.Create(domain.ProductDetail{
		ID: detailID, ProductID: productID, Size: size, Quantity: qty, Price: price, Active: true,
	})
	require.NoError(t, err)
	return detailID
}

func (f *cartFixture) mutate(t *testing.T, action services.Action, product, detail string) *services.Result {
	t.Helper()
	res, err := f.svc.Mutate(alice, aliceCart, services.MutationRequest{Action: action, Product: product, ProductDetail: detail})
	require.NoError(t, err)
	return res
}

func (f *cartFixture) addQuantity(t *testing.T, product, detail string, n int) *services.Result {
	t.Helper()
	res, err := f.svc.Mutate(alice, aliceCart, services.MutationRequest{
		Action: services.ActionAddQuantity, Product: product, ProductDetail: detail, Quantity: &n,
	})
	require.NoError(t, err)
	return res
}

// qty returns the active line quantity for product, or 0 when there is no line.
func (f *cartFixture) qty(t *testing.T, product string) int {
	t.Helper()
	it, err := f.cart.FindItem(aliceCart, product, false)
	if repos.IsNotFound(err) {
		return 0
	}
	require.NoError(t, err)
	return it.Quantity
}

func (f *cartFixture) itemCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, `SELECT COUNT(*) FROM cart_items`))
	return n
}

func view(t *testing.T, res *services.Result) services.CartView {
	t.Helper()
	v, ok := res.Data.(services.CartView)
	require.True(t, ok, "result data is %T", res.Data)
	return v
}

func TestCartMutate_AddTwiceScenario(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 5, 500)

	res := f.mutate(t, services.ActionAdd, "p", detail)
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, services.MsgBagUpdated, res.Message)
	v := view(t, res)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 1, v.Items[0].Quantity)
	assert.Equal(t, int64(500), v.CartTotal)

	res = f.mutate(t, services.ActionAdd, "p", detail)
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, services.MsgProductAdded, res.Message)
	v = view(t, res)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 2, v.Items[0].Quantity)
	assert.Equal(t, int64(1000), v.CartTotal)
	assert.Equal(t, "p", v.Items[0].Product.ID)
	assert.Equal(t, "Tops", v.Items[0].Product.Category.Name)
	assert.Equal(t, detail, v.Items[0].ProductDetail.ID)
	assert.Equal(t, domain.SizeM, v.Items[0].Size)
}

func TestCartMutate_RemoveDecrementsThenDeletes(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 5, 500)
	f.addQuantity(t, "p", detail, 3)
	require.Equal(t, 3, f.qty(t, "p"))

	res := f.mutate(t, services.ActionRemove, "p", detail)
	assert.Equal(t, services.MsgProductRemoved, res.Message)
	assert.Equal(t, 2, f.qty(t, "p"))
	assert.Equal(t, int64(1000), view(t, res).CartTotal)

	f.mutate(t, services.ActionRemove, "p", detail)
	assert.Equal(t, 1, f.qty(t, "p"))

	res = f.mutate(t, services.ActionRemove, "p", detail)
	assert.Equal(t, 200, res.Status)
	_, err := f.cart.FindItem(aliceCart, "p", false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Empty(t, view(t, res).Items)
	assert.Zero(t, view(t, res).CartTotal)
}

func TestCartMutate_DeleteClearsLine(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeL, 9, 250)
	f.addQuantity(t, "p", detail, 4)

	res := f.mutate(t, services.ActionDelete, "p", detail)
	assert.Equal(t, services.MsgProductDeleted, res.Message)
	assert.Equal(t, 0, f.qty(t, "p"))
	assert.Zero(t, view(t, res).CartTotal)
}

func TestCartMutate_AddAtStockLimitIsRejected(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeS, 2, 700)
	f.addQuantity(t, "p", detail, 2)

	res := f.mutate(t, services.ActionAdd, "p", detail)
	assert.Equal(t, 400, res.Status)
	assert.Equal(t, services.MsgStockLimit, res.Message)
	assert.Equal(t, 2, f.qty(t, "p"))
	assert.Equal(t, int64(1400), view(t, res).CartTotal)
}

func TestCartMutate_InitialQuantityIsStockBounded(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 5, 500)

	res := f.addQuantity(t, "p", detail, 6)
	assert.Equal(t, 400, res.Status)
	assert.Equal(t, services.MsgStockLimit, res.Message)
	assert.Equal(t, 0, f.qty(t, "p"))

	res = f.addQuantity(t, "p", detail, 5)
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, int64(2500), view(t, res).CartTotal)
}

func TestCartMutate_AddQuantityOnExistingLine(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 5, 100)
	f.mutate(t, services.ActionAdd, "p", detail)

	res := f.addQuantity(t, "p", detail, 3)
	assert.Equal(t, services.MsgProductAdded, res.Message)
	assert.Equal(t, 4, f.qty(t, "p"))

	res = f.addQuantity(t, "p", detail, 2)
	assert.Equal(t, 400, res.Status)
	assert.Equal(t, 4, f.qty(t, "p"))
}

func TestCartMutate_RemoveWithoutLineCreatesOne(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 5, 100)

	res := f.mutate(t, services.ActionRemove, "p", detail)
	assert.Equal(t, services.MsgBagUpdated, res.Message)
	assert.Equal(t, 1, f.qty(t, "p"))
}

func TestCartMutate_StockMonotonicity(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 3, 100)

	for i := 0; i < 6; i++ {
		f.mutate(t, services.ActionAdd, "p", detail)
		assert.LessOrEqual(t, f.qty(t, "p"), 3)
	}
	assert.Equal(t, 3, f.qty(t, "p"))
}

func TestCartMutate_ConcurrentAddsNeverOvercommit(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 4, 100)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Mutate(alice, aliceCart, services.MutationRequest{
				Action: services.ActionAdd, Product: "p", ProductDetail: detail,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 4, f.qty(t, "p"))
	assert.Equal(t, 1, f.itemCount(t))
}

func TestCartMutate_Validation(t *testing.T) {
	f := newCartFixture(t)
	detail := f.addProduct(t, "p", domain.SizeM, 5, 100)

	cases := []services.MutationRequest{
		{Product: "p", ProductDetail: detail},
		{Action: services.ActionAdd, ProductDetail: detail},
		{Action: services.ActionAdd, Product: "p"},
	}
	for _, req := range cases {
		_, err := f.svc.Mutate(alice, aliceCart, req)
		assert.Equal(t, services.KindValidation, services.KindOf(err), "%+v", req)
		assert.Equal(t, services.MsgRequiredFields, services.Message(err))
	}

	_, err := f.svc.Mutate(alice, aliceCart, services.MutationRequest{Action: "buy", Product: "p", ProductDetail: detail})
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	zero := 0
	_, err = f.svc.Mutate(alice, aliceCart, services.MutationRequest{
		Action: services.ActionAddQuantity, Product: "p", ProductDetail: detail, Quantity: &zero,
	})
	assert.Equal(t, services.KindValidation, services.KindOf(err))
	assert.Equal(t, 0, f.itemCount(t))
}

func TestCartMutate_NotInStock(t *testing.T) {
	f := newCartFixture(t)

	cases := []services.MutationRequest{
		{Action: services.ActionAdd, Product: "nope", ProductDetail: "tee-001-s"},
		{Action: services.ActionAdd, Product: "tee-001", ProductDetail: "nope"},
		{Action: services.ActionAdd, Product: "tee-001", ProductDetail: "tee-001-l"},   // quantity 0
		{Action: services.ActionAdd, Product: "tee-001", ProductDetail: "jeans-001-m"}, // other product
	}
	for _, req := range cases {
		_, err := f.svc.Mutate(alice, aliceCart, req)
		assert.Equal(t, services.KindNotFound, services.KindOf(err), "%+v", req)
		assert.Equal(t, services.MsgNotInStock, services.Message(err))
	}
	assert.Equal(t, 0, f.itemCount(t))
}

func TestCartMutate_SizeMismatchIsBadRequest(t *testing.T) {
	f := newCartFixture(t)
	f.mutate(t, services.ActionAdd, "tee-001", "tee-001-s")

	_, err := f.svc.Mutate(alice, aliceCart, services.MutationRequest{
		Action: services.ActionAdd, Product: "tee-001", ProductDetail: "tee-001-m",
	})
	assert.Equal(t, services.KindBadRequest, services.KindOf(err))
	assert.Equal(t, services.MsgBadRequest, services.Message(err))
	assert.Equal(t, 1, f.qty(t, "tee-001"))
}

func TestCartMutate_ForeignCart(t *testing.T) {
	f := newCartFixture(t)

	for _, cartID := range []string{bobCart, "missing"} {
		_, err := f.svc.Mutate(alice, cartID, services.MutationRequest{
			Action: services.ActionAdd, Product: "tee-001", ProductDetail: "tee-001-s",
		})
		assert.Equal(t, services.KindNotFound, services.KindOf(err))
		assert.Equal(t, services.MsgCartNotFound, services.Message(err))
	}
}

func TestCartTotal_OrphanSelfHeal(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(nil) })

	f := newCartFixture(t)
	f.mutate(t, services.ActionAdd, "tee-001", "tee-001-s")
	f.mutate(t, services.ActionAdd, "shoe-001", "shoe-001-l")
	require.NoError(t, f.inv.SetQty("shoe-001-l", 0))

	total, err := f.svc.Total(aliceCart)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), total)
	assert.Equal(t, 0, f.qty(t, "shoe-001"))
	assert.Equal(t, 1, f.itemCount(t))
	require.Equal(t, 1, logs.FilterMessage("cart.evict").Len())

	again, err := f.svc.Total(aliceCart)
	require.NoError(t, err)
	assert.Equal(t, total, again)
	assert.Equal(t, 1, f.itemCount(t))
	assert.Equal(t, 1, logs.FilterMessage("cart.evict").Len())
}

func TestCartTotal_Idempotent(t *testing.T) {
	f := newCartFixture(t)
	f.addQuantity(t, "tee-001", "tee-001-s", 2)
	f.mutate(t, services.ActionAdd, "jeans-001", "jeans-001-m")

	first, err := f.svc.Total(aliceCart)
	require.NoError(t, err)
	rows := f.itemCount(t)
	second, err := f.svc.Total(aliceCart)
	require.NoError(t, err)

	assert.Equal(t, int64(2*1999+8900), first)
	assert.Equal(t, first, second)
	assert.Equal(t, rows, f.itemCount(t))
}

func TestCartTotal_StaleLineContributesNothing(t *testing.T) {
	f := newCartFixture(t)
	f.addQuantity(t, "tee-001", "tee-001-s", 3)
	f.mutate(t, services.ActionAdd, "shoe-001", "shoe-001-l")
	require.NoError(t, f.inv.SetQty("tee-001-s", 2))

	total, err := f.svc.Total(aliceCart)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), total)
	assert.Equal(t, 3, f.qty(t, "tee-001"), "stale line is kept")
}

func TestCartView_ExcludesWishlist(t *testing.T) {
	f := newCartFixture(t)
	wish := services.NewWishlistService(f.cart, f.inv)
	require.NoError(t, wish.Save(alice, services.WishlistRequest{Product: "jeans-001", ProductDetail: "jeans-001-xl"}))
	f.mutate(t, services.ActionAdd, "jeans-001", "jeans-001-xl")

	v, err := f.svc.Get(alice, aliceCart)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, int64(9400), v.CartTotal)

	list, err := f.svc.List(alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, aliceCart, list[0].ID)
}

func TestComputeTotal(t *testing.T) {
	stock := func(n int64) sql.NullInt64 { return sql.NullInt64{Int64: n, Valid: true} }
	lines := []repos.CartLine{
		{ItemID: "a", Quantity: 2, Stock: stock(5), Price: stock(300)},
		// no in-stock detail
		{ItemID: "b", Quantity: 1},
		// asks for more than the stock
		{ItemID: "c", Quantity: 4, Stock: stock(3), Price: stock(1000)},
		{ItemID: "d", Quantity: 3, Stock: stock(3), Price: stock(10)},
	}
	total, evicted := services.ComputeTotal(lines)
	assert.Equal(t, int64(630), total)
	assert.Equal(t, []string{"b"}, evicted)

	total, evicted = services.ComputeTotal(nil)
	assert.Zero(t, total)
	assert.Empty(t, evicted)
}
