package order

import "time"

type Sale struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"clientId"`
	Total     float64    `json:"total"`
	Items     []SaleItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

type SaleItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

type SaleRequest struct {
	ClientID string            `json:"clientId" binding:"required,uuid"`
	Items    []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

type SaleItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}
