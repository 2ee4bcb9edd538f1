package model

import "time"

type CartItem struct {
	CartItemId int64     `json:"cartItemId"`
	SessionId  string    `json:"sessionId"`
	ProductId  int64     `json:"productId"`
	Quantity   int       `json:"quantity"`
	AddedDate  time.Time `json:"addedDate"`
	Product    *Product  `json:"product,omitempty"`
}
