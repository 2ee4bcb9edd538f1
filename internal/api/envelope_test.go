package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainath-666/storefront/internal/model"
)

func TestDecodeListAcceptedShapes(t *testing.T) {
	tests := []struct {
		name                 string
		payload              string
		expectedTotalRecords int
	}{
		{
			name:    "given bare array should extract items",
			payload: `[{"productId":1,"productName":"Mug"},{"productId":2,"productName":"Pen"}]`,
		},
		{
			name:                 "given data array should extract items",
			payload:              `{"data":[{"productId":1,"productName":"Mug"},{"productId":2,"productName":"Pen"}],"totalRecords":9}`,
			expectedTotalRecords: 9,
		},
		{
			name:                 "given nested data should extract items",
			payload:              `{"data":{"data":[{"productId":1,"productName":"Mug"},{"productId":2,"productName":"Pen"}]},"totalRecords":9}`,
			expectedTotalRecords: 9,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items := []model.Product{}
			totalRecords, err := DecodeList([]byte(test.payload), &items)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, int64(1), items[0].ProductId)
			assert.Equal(t, "Mug", items[0].ProductName)
			assert.Equal(t, int64(2), items[1].ProductId)
			assert.Equal(t, test.expectedTotalRecords, totalRecords)
		})
	}
}

func TestDecodeListUnrecognizedShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "given empty payload should fail", payload: ``},
		{name: "given scalar should fail", payload: `42`},
		{name: "given object without data should fail", payload: `{"message":"ok"}`},
		{name: "given scalar data should fail", payload: `{"data":42}`},
		{name: "given doubly nested scalar should fail", payload: `{"data":{"data":42}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items := []model.Product{}
			_, err := DecodeList([]byte(test.payload), &items)
			assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	t.Run("given bare object should decode", func(t *testing.T) {
		product := model.Product{}
		err := DecodeObject([]byte(`{"productId":7,"productName":"Mug"}`), &product)
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ProductId)
	})
	t.Run("given wrapped object should unwrap", func(t *testing.T) {
		product := model.Product{}
		err := DecodeObject([]byte(`{"data":{"productId":7,"productName":"Mug"}}`), &product)
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ProductId)
	})
	t.Run("given non-object data should fail", func(t *testing.T) {
		product := model.Product{}
		err := DecodeObject([]byte(`{"data":[1,2]}`), &product)
		assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)
	})
	t.Run("given array payload should fail", func(t *testing.T) {
		product := model.Product{}
		err := DecodeObject([]byte(`[{"productId":7}]`), &product)
		assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)
	})
}

func TestDecodeNestedList(t *testing.T) {
	t.Run("given fixed nested shape should decode", func(t *testing.T) {
		categories := []model.Category{}
		payload := `{"success":true,"message":"ok","data":{"data":[{"categoryId":1,"categoryName":"Office"}]},"errors":[]}`
		err := DecodeNestedList([]byte(payload), &categories)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Office", categories[0].CategoryName)
	})
	t.Run("given flat data array should fail", func(t *testing.T) {
		categories := []model.Category{}
		err := DecodeNestedList([]byte(`{"data":[{"categoryId":1}]}`), &categories)
		assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)
	})
	t.Run("given bare array should fail", func(t *testing.T) {
		categories := []model.Category{}
		err := DecodeNestedList([]byte(`[{"categoryId":1}]`), &categories)
		assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)
	})
}
