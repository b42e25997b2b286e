package catalog

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=80"`
}
