package client

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CPF     string `json:"cpf"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type ClientRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	CPF     string `json:"cpf" binding:"required,min=11,max=14"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=200"`
}
