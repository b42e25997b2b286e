package order

import "time"

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseReceived  PurchaseStatus = "RECEIVED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

func ParsePurchaseStatus(raw string) (PurchaseStatus, bool) {
	switch PurchaseStatus(raw) {
	case PurchasePending, PurchaseReceived, PurchaseCancelled:
		return PurchaseStatus(raw), true
	}

	return "", false
}

type PurchaseOrder struct {
	ID         string         `json:"id"`
	SupplierID string         `json:"supplierId"`
	Status     PurchaseStatus `json:"status"`
	Total      float64        `json:"total"`
	Items      []PurchaseItem `json:"items"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type PurchaseItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type PurchaseOrderRequest struct {
	SupplierID string                `json:"supplierId" binding:"required,uuid"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

type PurchaseItemRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unitPrice" binding:"required,gt=0"`
}

type PurchaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING RECEIVED CANCELLED"`
}
