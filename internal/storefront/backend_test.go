package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/sainath-666/storefront/internal/api"
	"github.com/sainath-666/storefront/internal/cart"
	"github.com/sainath-666/storefront/internal/catalog"
	"github.com/sainath-666/storefront/internal/model"
)

// fakeStore backs the view tests with an in-memory catalog and cart.
type fakeStore struct {
	mu       sync.Mutex
	products map[int64]model.Product
	items    []model.CartItem
	nextId   int64

	puts    atomic.Int32
	deletes atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: map[int64]model.Product{}}
}

func (f *fakeStore) addProduct(product model.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ProductId] = product
}

func (f *fakeStore) seedItem(productId int64, quantity int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextId++
	f.items = append(f.items, model.CartItem{
		CartItemId: f.nextId,
		ProductId:  productId,
		Quantity:   quantity,
		AddedDate:  time.Now(),
	})
	return f.nextId
}

func (f *fakeStore) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/Products", func(w http.ResponseWriter, r *http.Request) {
		categoryId, _ := strconv.ParseInt(r.URL.Query().Get("categoryId"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		listed := []model.Product{}
		for _, product := range f.products {
			if categoryId > 0 && product.CategoryId != categoryId {
				continue
			}
			listed = append(listed, product)
		}
		json.NewEncoder(w).Encode(listed)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/Products/{productId}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		product, ok := f.products[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(product)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/Cart", func(w http.ResponseWriter, r *http.Request) {
		payload := model.CartItem{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextId++
		payload.CartItemId = f.nextId
		payload.AddedDate = time.Now()
		f.items = append(f.items, payload)
		w.Write([]byte(strconv.FormatInt(payload.CartItemId, 10)))
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/Cart/{sessionId}/clear", func(w http.ResponseWriter, r *http.Request) {
		f.deletes.Add(1)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.items = nil
	}).Methods(http.MethodDelete)

	router.HandleFunc("/api/Cart/{cartItemId:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		f.puts.Add(1)
		id, _ := strconv.ParseInt(mux.Vars(r)["cartItemId"], 10, 64)
		quantity := 0
		if err := json.NewDecoder(r.Body).Decode(&quantity); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.items {
			if f.items[i].CartItemId == id {
				f.items[i].Quantity = quantity
			}
		}
	}).Methods(http.MethodPut)

	router.HandleFunc("/api/Cart/{cartItemId:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		f.deletes.Add(1)
		id, _ := strconv.ParseInt(mux.Vars(r)["cartItemId"], 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		remaining := f.items[:0]
		for _, item := range f.items {
			if item.CartItemId != id {
				remaining = append(remaining, item)
			}
		}
		f.items = remaining
	}).Methods(http.MethodDelete)

	router.HandleFunc("/api/Cart/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": f.items})
	}).Methods(http.MethodGet)

	return router
}

type fixture struct {
	store      *fakeStore
	products   catalog.ProductCatalog
	categories catalog.CategoryCatalog
	cart       *cart.Cart
}

func newFixture(t *testing.T) *fixture {
	store := newFakeStore()
	server := httptest.NewServer(store.router())
	t.Cleanup(server.Close)
	client := api.NewClient(api.Config{BaseUrl: server.URL + "/api"})
	session := cart.NewSessionStore(filepath.Join(t.TempDir(), "session"))
	return &fixture{
		store:      store,
		products:   catalog.NewProductCatalog(client),
		categories: catalog.NewCategoryCatalog(client),
		cart:       cart.NewCart(client, session),
	}
}
