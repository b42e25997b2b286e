package catalog

import "time"

// Unit mirrors the measurement units the stock is counted in.
type Unit string

const (
	UnitPiece Unit = "UN"
	UnitKilo  Unit = "KG"
	UnitLiter Unit = "L"
	UnitBox   Unit = "CX"
	UnitPack  Unit = "PCT"
)

func ParseUnit(raw string) (Unit, bool) {
	switch Unit(raw) {
	case UnitPiece, UnitKilo, UnitLiter, UnitBox, UnitPack:
		return Unit(raw), true
	}

	return "", false
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Unit        Unit       `json:"unit"`
	Code        string     `json:"code"`
	MinStock    int        `json:"minStock"`
	MaxStock    int        `json:"maxStock"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Description string     `json:"description,omitempty"`
	Available   bool       `json:"available"`
	CategoryID  string     `json:"categoryId"`
	BrandID     string     `json:"brandId"`
	SupplierID  string     `json:"supplierId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ProductRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=120"`
	Price       float64    `json:"price" binding:"required,gt=0"`
	Quantity    int        `json:"quantity" binding:"min=0"`
	Unit        string     `json:"unit" binding:"required,oneof=UN KG L CX PCT"`
	Code        string     `json:"code" binding:"required,min=3,max=40"`
	MinStock    int        `json:"minStock" binding:"min=0"`
	MaxStock    int        `json:"maxStock" binding:"min=0"`
	ExpiresAt   *time.Time `json:"expiresAt" binding:"omitempty"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	Available   bool       `json:"available"`
	CategoryID  string     `json:"categoryId" binding:"required,uuid"`
	BrandID     string     `json:"brandId" binding:"required,uuid"`
	SupplierID  string     `json:"supplierId" binding:"required,uuid"`
}
