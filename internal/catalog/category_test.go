package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainath-666/storefront/internal/api"
)

func TestCategoryList(t *testing.T) {
	t.Run("given data array should normalize", func(t *testing.T) {
		router := mux.NewRouter()
		router.HandleFunc("/api/Categories", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"categoryId":1,"categoryName":"Office"},{"categoryId":2,"categoryName":"Kitchen"}]}`))
		})
		categories := NewCategoryCatalog(newTestClient(t, router))

		result, err := categories.List(context.Background())
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "Office", result[0].CategoryName)
	})

	t.Run("given bare array should normalize", func(t *testing.T) {
		router := mux.NewRouter()
		router.HandleFunc("/api/Categories", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"categoryId":1,"categoryName":"Office"}]`))
		})
		categories := NewCategoryCatalog(newTestClient(t, router))

		result, err := categories.List(context.Background())
		require.NoError(t, err)
		require.Len(t, result, 1)
	})

	t.Run("given unreachable server should fail", func(t *testing.T) {
		categories := NewCategoryCatalog(api.NewClient(api.Config{BaseUrl: "http://127.0.0.1:1/api"}))

		_, err := categories.List(context.Background())
		assert.ErrorContains(t, err, "unable to contact the server")
	})
}

func TestCategoryGet(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/Categories/{categoryId}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", mux.Vars(r)["categoryId"])
		w.Write([]byte(`{"categoryId":3,"categoryName":"Office","parentCategoryId":1}`))
	})
	categories := NewCategoryCatalog(newTestClient(t, router))

	category, err := categories.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Office", category.CategoryName)
	require.NotNil(t, category.ParentCategoryId)
	assert.Equal(t, int64(1), *category.ParentCategoryId)
}

func TestCategoryHierarchy(t *testing.T) {
	t.Run("given nested envelope should decode tree", func(t *testing.T) {
		router := mux.NewRouter()
		router.HandleFunc("/api/Categories/hierarchy", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"data":[{"categoryId":1,"categoryName":"Office","subCategories":[{"categoryId":3,"categoryName":"Desks"}]}]}}`))
		})
		categories := NewCategoryCatalog(newTestClient(t, router))

		result, err := categories.Hierarchy(context.Background())
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.Len(t, result[0].SubCategories, 1)
		assert.Equal(t, "Desks", result[0].SubCategories[0].CategoryName)
	})

	t.Run("given flat envelope should fail", func(t *testing.T) {
		router := mux.NewRouter()
		router.HandleFunc("/api/Categories/hierarchy", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"categoryId":1,"categoryName":"Office"}]}`))
		})
		categories := NewCategoryCatalog(newTestClient(t, router))

		_, err := categories.Hierarchy(context.Background())
		assert.ErrorIs(t, err, api.ErrUnrecognizedEnvelope)
	})
}
