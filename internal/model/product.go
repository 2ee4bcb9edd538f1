package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductId   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryId  int64           `json:"categoryId"`
	ImageUrl    string          `json:"imageUrl,omitempty"`
	Images      []string        `json:"images,omitempty"`
	CreatedDate time.Time       `json:"createdDate"`
	IsActive    bool            `json:"isActive"`
}
