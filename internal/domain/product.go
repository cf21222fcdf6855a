package domain

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/enum"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProductDomain interface {
	DecrementStock(ctx context.Context, productID string, quantity int64) error
	IncrementStock(ctx context.Context, productID string, quantity int64) error

	Create(context.Context, *model.CreateProductRequest) (*model.CreateProductResponse, error)
	Update(context.Context, *model.UpdateProductRequest) (*model.UpdateProductResponse, error)
	Delete(context.Context, *model.DeleteProductRequest) (*model.DeleteProductResponse, error)
	Get(context.Context, *model.GetProductRequest) (*model.GetProductResponse, error)
	GetList(context.Context, *model.GetProductsRequest) (*model.GetProductsResponse, error)
}

type productDomain struct {
	productRepo repository.ProductRepository
}

func NewProductDomain(productRepo repository.ProductRepository) *productDomain {
	return &productDomain{productRepo: productRepo}
}

// DecrementStock takes quantity from an active product. When the guard fails
// the product is read again to tell which condition did not hold.
func (d *productDomain) DecrementStock(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return errorx.New(errorx.OrderInvalidRequest, "Quantity must be positive")
	}

	err := d.productRepo.DecrementStock(ctx, productID, quantity)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot decrement stock: %v", err)
		return errorx.Unknown
	}

	product, err := d.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.ProductNotFound, "Not found product %s", productID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return errorx.Unknown
	}

	if product.Status != entity.ProductActive {
		return errorx.New(errorx.ProductInactive, "Product %s is not on sale", productID)
	}

	return errorx.New(errorx.ProductStockInsufficient, "Product %s has only %d left", productID, product.Stock)
}

func (d *productDomain) IncrementStock(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return errorx.New(errorx.InvalidRequest, "Quantity must be positive")
	}

	if err := d.productRepo.IncrementStock(ctx, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.ProductStockRestoreFailed, "Cannot restock product %s", productID)
		}

		xcontext.Logger(ctx).Errorf("Cannot increment stock: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *productDomain) Create(
	ctx context.Context, req *model.CreateProductRequest,
) (*model.CreateProductResponse, error) {
	if err := validateProduct(req.Name, req.Description, req.Price, req.Stock); err != nil {
		return nil, err
	}

	if err := d.checkDuplicatedName(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	product := &entity.Product{
		SoftDeleteBase: entity.SoftDeleteBase{Base: entity.Base{ID: uuid.NewString()}},
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		Status:         entity.ProductActive,
	}

	if err := d.productRepo.Create(ctx, product); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create product: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProductResponse{Product: convertProduct(product)}, nil
}

func (d *productDomain) Update(
	ctx context.Context, req *model.UpdateProductRequest,
) (*model.UpdateProductResponse, error) {
	product, err := d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.ProductNotFound, "Not found product %s", req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	data := map[string]any{}
	if req.Name != nil {
		product.Name = *req.Name
		data["name"] = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
		data["description"] = *req.Description
	}

	if req.Price != nil {
		product.Price = *req.Price
		data["price"] = *req.Price
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
		data["stock"] = *req.Stock
	}

	if req.Status != nil {
		status, err := enum.ToEnum[entity.ProductStatus](*req.Status)
		if err != nil {
			return nil, errorx.New(errorx.ProductInvalidRequest, "Invalid product status %s", *req.Status)
		}

		product.Status = status
		data["status"] = status
	}

	if len(data) == 0 {
		return &model.UpdateProductResponse{Product: convertProduct(product)}, nil
	}

	if err := validateProduct(product.Name, product.Description, product.Price, product.Stock); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := d.checkDuplicatedName(ctx, *req.Name, product.ID); err != nil {
			return nil, err
		}
	}

	if err := d.productRepo.Update(ctx, product.ID, data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.ProductNotFound, "Not found product %s", req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot update product: %v", err)
		return nil, errorx.Unknown
	}

	product, err = d.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProductResponse{Product: convertProduct(product)}, nil
}

func (d *productDomain) Delete(
	ctx context.Context, req *model.DeleteProductRequest,
) (*model.DeleteProductResponse, error) {
	if err := d.productRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.ProductNotFound, "Not found product %s", req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot delete product: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteProductResponse{}, nil
}

func (d *productDomain) Get(
	ctx context.Context, req *model.GetProductRequest,
) (*model.GetProductResponse, error) {
	product, err := d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.ProductNotFound, "Not found product %s", req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetProductResponse{Product: convertProduct(product)}, nil
}

func (d *productDomain) GetList(
	ctx context.Context, req *model.GetProductsRequest,
) (*model.GetProductsResponse, error) {
	products, err := d.productRepo.GetList(ctx, repository.ProductFilter{
		ActiveOnly: req.ActiveOnly,
		Offset:     req.Offset,
		Limit:      pageLimit(req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get product list: %v", err)
		return nil, errorx.Unknown
	}

	clientProducts := []model.Product{}
	for _, p := range products {
		clientProducts = append(clientProducts, convertProduct(&p))
	}

	return &model.GetProductsResponse{Products: clientProducts}, nil
}

func (d *productDomain) checkDuplicatedName(ctx context.Context, name, exceptID string) error {
	existed, err := d.productRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get product by name: %v", err)
		return errorx.Unknown
	}

	if existed.ID == exceptID {
		return nil
	}

	return errorx.New(errorx.ProductConflict, "Product %s already exists", name)
}

func validateProduct(name, description string, price, stock int64) error {
	if l := utf8.RuneCountInString(name); l < common.MinProductNameLength || l > common.MaxProductNameLength {
		return errorx.New(errorx.ProductInvalidRequest, "Name must have %d to %d characters",
			common.MinProductNameLength, common.MaxProductNameLength)
	}

	l := utf8.RuneCountInString(description)
	if l < common.MinProductDescriptionLength || l > common.MaxProductDescriptionLength {
		return errorx.New(errorx.ProductInvalidRequest, "Description must have %d to %d characters",
			common.MinProductDescriptionLength, common.MaxProductDescriptionLength)
	}

	if price < common.MinProductPrice || price > common.MaxProductPrice {
		return errorx.New(errorx.ProductInvalidRequest, "Price must be between %d and %d",
			common.MinProductPrice, common.MaxProductPrice)
	}

	if stock < 0 || stock > common.MaxProductStock {
		return errorx.New(errorx.ProductInvalidRequest, "Stock must be between 0 and %d", common.MaxProductStock)
	}

	return nil
}
