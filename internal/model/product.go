package model

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
}

type CreateProductResponse struct {
	Product Product `json:"product"`
}

// UpdateProductRequest changes only the fields which are set.
type UpdateProductRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Stock       *int64  `json:"stock"`
	Status      *string `json:"status"`
}

type UpdateProductResponse struct {
	Product Product `json:"product"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type DeleteProductResponse struct{}

type GetProductRequest struct {
	ID string `json:"id"`
}

type GetProductResponse struct {
	Product Product `json:"product"`
}

type GetProductsRequest struct {
	ActiveOnly bool `json:"active_only"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
}

type GetProductsResponse struct {
	Products []Product `json:"products"`
}
