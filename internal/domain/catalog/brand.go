package catalog

type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BrandRequest struct {
	Name string `json:"name" binding:"required,min=2,max=80"`
}
