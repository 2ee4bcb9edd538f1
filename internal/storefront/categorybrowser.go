package storefront

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sainath-666/storefront/internal/catalog"
	"github.com/sainath-666/storefront/internal/log"
	"github.com/sainath-666/storefront/internal/model"
)

// CategoryBrowser is the category navigation state. The flat list drives
// the filter sidebar; the hierarchy endpoint provides the pre-nested tree.
type CategoryBrowser struct {
	categories catalog.CategoryCatalog

	mu         sync.Mutex
	flat       []model.Category
	tree       []model.Category
	expanded   map[int64]bool
	loading    bool
	errMessage string
}

func NewCategoryBrowser(categories catalog.CategoryCatalog) *CategoryBrowser {
	return &CategoryBrowser{categories: categories, expanded: map[int64]bool{}}
}

func (cb *CategoryBrowser) Load(c context.Context) {
	cb.mu.Lock()
	cb.loading = true
	cb.errMessage = ""
	cb.mu.Unlock()

	categories, err := cb.categories.List(c)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.loading = false
	if err != nil {
		zerolog.Ctx(c).Error().
			Str(log.KEY_TAG, "CategoryBrowser Load").
			Err(err).
			Msgf("failed loading categories with error=%s", err.Error())
		cb.errMessage = "Failed to load categories. Please try again."
		cb.flat = nil
		return
	}
	cb.flat = categories
}

// LoadTree fetches the pre-nested hierarchy.
func (cb *CategoryBrowser) LoadTree(c context.Context) error {
	tree, err := cb.categories.Hierarchy(c)
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.tree = nil
		return err
	}
	cb.tree = tree
	return nil
}

func (cb *CategoryBrowser) Categories() []model.Category {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	flat := make([]model.Category, len(cb.flat))
	copy(flat, cb.flat)
	return flat
}

func (cb *CategoryBrowser) Tree() []model.Category {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	tree := make([]model.Category, len(cb.tree))
	copy(tree, cb.tree)
	return tree
}

// ToggleExpanded flips a tree node between expanded and collapsed.
func (cb *CategoryBrowser) ToggleExpanded(categoryId int64) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.expanded[categoryId] {
		delete(cb.expanded, categoryId)
		return
	}
	cb.expanded[categoryId] = true
}

func (cb *CategoryBrowser) IsExpanded(categoryId int64) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.expanded[categoryId]
}

func (cb *CategoryBrowser) Loading() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.loading
}

func (cb *CategoryBrowser) ErrMessage() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.errMessage
}

// Nest builds a tree from a flat category list by parent id. Categories
// whose parent is absent from the list surface as roots.
func Nest(flat []model.Category) []model.Category {
	known := make(map[int64]bool, len(flat))
	for _, category := range flat {
		known[category.CategoryId] = true
	}

	children := map[int64][]model.Category{}
	roots := []model.Category{}
	for _, category := range flat {
		category.SubCategories = nil
		if category.ParentCategoryId != nil && known[*category.ParentCategoryId] {
			parentId := *category.ParentCategoryId
			children[parentId] = append(children[parentId], category)
			continue
		}
		roots = append(roots, category)
	}

	var build func(node model.Category) model.Category
	build = func(node model.Category) model.Category {
		for _, child := range children[node.CategoryId] {
			node.SubCategories = append(node.SubCategories, build(child))
		}
		return node
	}
	nested := make([]model.Category, 0, len(roots))
	for _, root := range roots {
		nested = append(nested, build(root))
	}
	return nested
}
