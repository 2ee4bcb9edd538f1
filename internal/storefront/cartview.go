package storefront

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/sainath-666/storefront/internal/cart"
	"github.com/sainath-666/storefront/internal/catalog"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
)

// CartView is the cart page state: the item list enriched with full
// product details, one product fetch per line item. Enrichment failures
// leave the item bare rather than failing the view.
type CartView struct {
	cart     *cart.Cart
	products catalog.ProductCatalog

	mu      sync.Mutex
	items   []model.CartItem
	loading bool
}

func NewCartView(cartService *cart.Cart, products catalog.ProductCatalog) *CartView {
	return &CartView{cart: cartService, products: products}
}

// Load snapshots the cart and attaches product details to every item.
func (v *CartView) Load(c context.Context) {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	items := v.cart.Snapshot(c)
	if len(items) > 0 {
		group, gc := errgroup.WithContext(c)
		for i := range items {
			i := i
			group.Go(func() error {
				product, err := v.products.Get(gc, items[i].ProductId)
				if err != nil {
					zerolog.Ctx(c).Warn().
						Str(log.KEY_TAG, "CartView Load").
						Int64(log.KEY_PRODUCT_ID, items[i].ProductId).
						Err(err).
						Msgf("failed loading product details with error=%s", err.Error())
					return nil
				}
				items[i].Product = &product
				return nil
			})
		}
		group.Wait()
	}

	v.mu.Lock()
	v.items = items
	v.loading = false
	v.mu.Unlock()
}

func (v *CartView) Items() []model.CartItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := make([]model.CartItem, len(v.items))
	copy(items, v.items)
	return items
}

func (v *CartView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *CartView) TotalItems() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := 0
	for _, item := range v.items {
		total += item.Quantity
	}
	return total
}

// Total sums price times quantity over the enriched items. Items without
// attached product details contribute nothing.
func (v *CartView) Total() decimal.Decimal {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := decimal.Zero
	for _, item := range v.items {
		if item.Product == nil {
			continue
		}
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

func (v *CartView) find(cartItemId int64) (model.CartItem, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, item := range v.items {
		if item.CartItemId == cartItemId {
			return item, true
		}
	}
	return model.CartItem{}, false
}

// Increment bumps the item's quantity by one and reloads to sync with the
// server. The reload runs whether the update succeeded or not.
func (v *CartView) Increment(c context.Context, cartItemId int64) error {
	item, ok := v.find(cartItemId)
	if !ok {
		return cart.ErrItemNotFound
	}
	_, err := v.cart.UpdateQuantity(c, cartItemId, item.Quantity+1)
	v.Load(c)
	return err
}

// Decrement lowers the item's quantity by one; at quantity one the item is
// removed instead.
func (v *CartView) Decrement(c context.Context, cartItemId int64) error {
	item, ok := v.find(cartItemId)
	if !ok {
		return cart.ErrItemNotFound
	}
	if item.Quantity <= 1 {
		return v.Remove(c, cartItemId)
	}
	_, err := v.cart.UpdateQuantity(c, cartItemId, item.Quantity-1)
	v.Load(c)
	return err
}

func (v *CartView) Remove(c context.Context, cartItemId int64) error {
	err := v.cart.Remove(c, cartItemId)
	v.Load(c)
	return err
}

func (v *CartView) Clear(c context.Context) error {
	err := v.cart.Clear(c)
	v.Load(c)
	return err
}
