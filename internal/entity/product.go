package entity

import "github.com/pointroulette/backend/pkg/enum"

type ProductStatus string

var (
	ProductActive   = enum.New(ProductStatus("ACTIVE"), "ACTIVE")
	ProductInactive = enum.New(ProductStatus("INACTIVE"), "INACTIVE")
)

type Product struct {
	SoftDeleteBase

	Name        string `gorm:"size:100"`
	Description string `gorm:"size:500"`
	Price       int64
	Stock       int64
	Status      ProductStatus `gorm:"size:16"`
	Version     int64
}
