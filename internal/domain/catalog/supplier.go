package catalog

type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type SupplierRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	CNPJ    string `json:"cnpj" binding:"required,min=14,max=18"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=200"`
}
