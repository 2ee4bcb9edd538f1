package storefront

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sainath-666/storefront/internal/cart"
	"github.com/sainath-666/storefront/internal/catalog"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
)

const relatedPageSize = 4

// Detail is the product page state: the product, the quantity stepper
// bounded by stock, and a small set of related products from the same
// category.
type Detail struct {
	products catalog.ProductCatalog
	cart     *cart.Cart

	mu       sync.Mutex
	product  *model.Product
	quantity int
	related  []model.Product
}

func NewDetail(products catalog.ProductCatalog, cartService *cart.Cart) *Detail {
	return &Detail{products: products, cart: cartService, quantity: 1}
}

func (d *Detail) Load(c context.Context, productId int64) error {
	product, err := d.products.Get(c, productId)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.product = &product
	d.quantity = 1
	d.mu.Unlock()

	d.loadRelated(c, product)
	return nil
}

func (d *Detail) loadRelated(c context.Context, product model.Product) {
	result, err := d.products.List(c, catalog.ListParams{
		Page:       1,
		PageSize:   relatedPageSize + 1,
		CategoryId: product.CategoryId,
		Ascending:  true,
	})
	if err != nil {
		zerolog.Ctx(c).Warn().
			Str(log.KEY_TAG, "Detail loadRelated").
			Int64(log.KEY_PRODUCT_ID, product.ProductId).
			Err(err).
			Msgf("failed loading related products with error=%s", err.Error())
		return
	}
	related := []model.Product{}
	for _, candidate := range result.Items {
		if candidate.ProductId == product.ProductId {
			continue
		}
		related = append(related, candidate)
		if len(related) == relatedPageSize {
			break
		}
	}
	d.mu.Lock()
	d.related = related
	d.mu.Unlock()
}

func (d *Detail) Product() *model.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product == nil {
		return nil
	}
	product := *d.product
	return &product
}

func (d *Detail) Related() []model.Product {
	d.mu.Lock()
	defer d.mu.Unlock()
	related := make([]model.Product, len(d.related))
	copy(related, d.related)
	return related
}

func (d *Detail) Quantity() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quantity
}

// IncrementQuantity steps the picker up, bounded by the product's stock.
func (d *Detail) IncrementQuantity() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product != nil && d.quantity < d.product.Stock {
		d.quantity++
	}
}

func (d *Detail) DecrementQuantity() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.quantity > 1 {
		d.quantity--
	}
}

// AddToCart adds the displayed product at the picked quantity.
func (d *Detail) AddToCart(c context.Context) (model.CartItem, error) {
	d.mu.Lock()
	product := d.product
	quantity := d.quantity
	d.mu.Unlock()
	if product == nil {
		return model.CartItem{}, cart.ErrItemNotFound
	}
	return d.cart.Add(c, product.ProductId, quantity)
}
