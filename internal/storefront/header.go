package storefront

import (
	"context"
	"sync"

	"github.com/sainath-666/storefront/internal/cart"
	"github.com/sainath-666/storefront/internal/catalog"
)

// Header is the application shell state: the live cart badge count and
// search suggestions for the global search box.
type Header struct {
	cart     *cart.Cart
	products catalog.ProductCatalog

	mu     sync.Mutex
	count  int
	cancel func()
}

func NewHeader(cartService *cart.Cart, products catalog.ProductCatalog) *Header {
	return &Header{cart: cartService, products: products}
}

// Watch subscribes to the cart item count and keeps the badge current
// until Close is called.
func (h *Header) Watch(c context.Context) {
	counts, cancel := h.cart.ItemCount(c)
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()
	go func() {
		for count := range counts {
			h.mu.Lock()
			h.count = count
			h.mu.Unlock()
		}
	}()
}

func (h *Header) CartItemCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Suggest proxies the catalog's suggestion path for the search box.
func (h *Header) Suggest(c context.Context, query string) []string {
	return h.products.Suggest(c, query)
}

func (h *Header) Close() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
