package storefront

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sainath-666/storefront/internal/catalog"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
)

const DefaultPageSize = 12

const (
	errNoProducts       = "No products found"
	errProductsFailed   = "Failed to load products"
	errCategoriesFailed = "Failed to load categories"
)

// Browser holds the transient state of the product listing view: current
// page, filters, the accumulated product list and its loading/error flags.
// Filter and search state mirrors to URL query parameters so a view can be
// restored from a link.
type Browser struct {
	products   catalog.ProductCatalog
	categories catalog.CategoryCatalog

	mu               sync.Mutex
	items            []model.Product
	categoryOptions  []model.Category
	page             int
	pageSize         int
	totalCount       int
	loading          bool
	errMessage       string
	selectedCategory int64
	searchQuery      string
	ascending        bool
	gridView         bool
}

func NewBrowser(
	products catalog.ProductCatalog,
	categories catalog.CategoryCatalog,
	pageSize int,
) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{
		products:   products,
		categories: categories,
		page:       1,
		pageSize:   pageSize,
		ascending:  true,
		gridView:   true,
	}
}

// ApplyQuery restores filter state from URL query parameters
// (categoryId, searchTerm, page).
func (b *Browser) ApplyQuery(values url.Values) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if raw := values.Get("categoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			b.selectedCategory = id
		}
	} else {
		b.selectedCategory = 0
	}
	if values.Has("searchTerm") {
		b.searchQuery = values.Get("searchTerm")
	}
	b.page = 1
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			b.page = page
		}
	}
}

// QueryValues renders the current filter state as URL query parameters.
func (b *Browser) QueryValues() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	values := url.Values{}
	if b.selectedCategory > 0 {
		values.Set("categoryId", strconv.FormatInt(b.selectedCategory, 10))
	}
	if b.searchQuery != "" {
		values.Set("searchTerm", b.searchQuery)
	}
	if b.page > 1 {
		values.Set("page", strconv.Itoa(b.page))
	}
	return values
}

// Load fetches the current page. Page 1 replaces the accumulated list,
// later pages append to it (infinite scroll). Re-entrant loads are
// dropped. An empty result is the "no products found" state, not a
// failure.
func (b *Browser) Load(c context.Context) error {
	b.mu.Lock()
	if b.loading {
		b.mu.Unlock()
		return nil
	}
	b.loading = true
	b.errMessage = ""
	params := catalog.ListParams{
		Page:       b.page,
		PageSize:   b.pageSize,
		CategoryId: b.selectedCategory,
		Ascending:  b.ascending,
		Search:     strings.TrimSpace(b.searchQuery),
	}
	b.mu.Unlock()

	result, err := b.products.List(c, params)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		zerolog.Ctx(c).Error().
			Str(log.KEY_TAG, "Browser Load").
			Err(err).
			Msgf("failed loading products with error=%s", err.Error())
		b.errMessage = errProductsFailed
		b.items = nil
		b.totalCount = 0
		return err
	}
	if len(result.Items) == 0 {
		b.errMessage = errNoProducts
		b.items = nil
		b.totalCount = 0
		return nil
	}
	if b.page == 1 {
		b.items = result.Items
	} else {
		b.items = append(b.items, result.Items...)
	}
	b.totalCount = result.TotalCount
	return nil
}

// NextPage advances and loads the next page while more products remain.
func (b *Browser) NextPage(c context.Context) error {
	b.mu.Lock()
	if len(b.items) >= b.totalCount {
		b.mu.Unlock()
		return nil
	}
	b.page++
	b.mu.Unlock()
	return b.Load(c)
}

func (b *Browser) SetCategory(c context.Context, categoryId int64) error {
	b.mu.Lock()
	b.selectedCategory = categoryId
	b.page = 1
	b.mu.Unlock()
	return b.Load(c)
}

func (b *Browser) SetSearch(c context.Context, query string) error {
	b.mu.Lock()
	b.searchQuery = query
	b.page = 1
	b.mu.Unlock()
	return b.Load(c)
}

func (b *Browser) ClearSearch(c context.Context) error {
	return b.SetSearch(c, "")
}

func (b *Browser) ToggleSort(c context.Context) error {
	b.mu.Lock()
	b.ascending = !b.ascending
	b.page = 1
	b.mu.Unlock()
	return b.Load(c)
}

func (b *Browser) ToggleView() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gridView = !b.gridView
}

// LoadCategories fills the category filter options from the flat list.
// Failure degrades to an empty option list with the error message set.
func (b *Browser) LoadCategories(c context.Context) {
	categories, err := b.categories.List(c)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		zerolog.Ctx(c).Error().
			Str(log.KEY_TAG, "Browser LoadCategories").
			Err(err).
			Msgf("failed loading categories with error=%s", err.Error())
		b.errMessage = errCategoriesFailed
		b.categoryOptions = nil
		return
	}
	b.categoryOptions = categories
}

func (b *Browser) Products() []model.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]model.Product, len(b.items))
	copy(items, b.items)
	return items
}

func (b *Browser) CategoryOptions() []model.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	options := make([]model.Category, len(b.categoryOptions))
	copy(options, b.categoryOptions)
	return options
}

func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

func (b *Browser) TotalCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalCount
}

func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

func (b *Browser) ErrMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMessage
}

func (b *Browser) SearchQuery() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searchQuery
}

func (b *Browser) GridView() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gridView
}
