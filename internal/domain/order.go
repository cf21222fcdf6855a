package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/enum"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type OrderDomain interface {
	CreateOrder(context.Context, *model.CreateOrderRequest) (*model.CreateOrderResponse, error)
	CancelOrder(context.Context, *model.CancelOrderRequest) (*model.CancelOrderResponse, error)
	UpdateOrderStatus(context.Context, *model.UpdateOrderStatusRequest) (*model.UpdateOrderStatusResponse, error)
	GetOrders(context.Context, *model.GetOrdersRequest) (*model.GetOrdersResponse, error)
	GetMyOrders(context.Context, *model.GetMyOrdersRequest) (*model.GetMyOrdersResponse, error)
}

type orderDomain struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	productDomain  ProductDomain
	pointDomain    PointDomain
	eventPublisher *ledgerEventPublisher
}

func NewOrderDomain(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	productDomain ProductDomain,
	pointDomain PointDomain,
	publisher pubsub.Publisher,
) *orderDomain {
	return &orderDomain{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		productDomain:  productDomain,
		pointDomain:    pointDomain,
		eventPublisher: newLedgerEventPublisher(publisher),
	}
}

// CreateOrder buys quantity items of the product with the points of the user.
// Stock, order and FIFO debit are applied together or not at all.
func (d *orderDomain) CreateOrder(
	ctx context.Context, req *model.CreateOrderRequest,
) (resp *model.CreateOrderResponse, err error) {
	defer func() { common.ObserveLedgerOperation("create_order", err) }()

	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	maxQuantity := xcontext.Configs(ctx).Ledger.MaxOrderQuantity
	if req.Quantity < 1 || req.Quantity > maxQuantity {
		return nil, errorx.New(errorx.OrderInvalidRequest, "Quantity must be between 1 and %d", maxQuantity)
	}

	if req.ProductID == "" {
		return nil, errorx.New(errorx.OrderInvalidRequest, "Product id is required")
	}

	now := xcontext.Now(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	product, err := d.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.ProductNotFound, "Not found product %s", req.ProductID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	if product.Status != entity.ProductActive {
		return nil, errorx.New(errorx.ProductInactive, "Product %s is not on sale", product.ID)
	}

	if _, err := d.pointDomain.SweepUserExpired(ctx, req.UserID, now); err != nil {
		return nil, err
	}

	required := product.Price * int64(req.Quantity)
	available, err := d.pointDomain.SumAvailable(ctx, req.UserID, now)
	if err != nil {
		return nil, err
	}

	if available < required {
		return nil, errorx.New(errorx.PointBalanceInsufficient,
			"Point balance %d is less than %d", available, required)
	}

	if err := d.productDomain.DecrementStock(ctx, product.ID, int64(req.Quantity)); err != nil {
		return nil, err
	}

	order := &entity.Order{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        req.UserID,
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		PointsCharged: required,
		Status:        entity.OrderPlaced,
		OrderedAt:     now,
	}

	if err := d.orderRepo.Create(ctx, order); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create order: %v", err)
		return nil, errorx.Unknown
	}

	consumptions, err := d.pointDomain.DebitFIFO(ctx, req.UserID, required, now, order.ID)
	if err != nil {
		return nil, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit order: %v", err)
		return nil, errorx.Unknown
	}

	d.eventPublisher.publish(ctx, model.LedgerEvent{
		Type:        EventOrderCreated,
		UserID:      req.UserID,
		ReferenceID: order.ID,
		Points:      required,
		OccurredAt:  now,
	})

	order.Product = *product
	return &model.CreateOrderResponse{
		Order:           convertOrder(order),
		Consumptions:    consumptions,
		RemainingPoints: available - required,
	}, nil
}

// CancelOrder cancels a placed order, restocks the product and refunds the
// charged points as a new unit.
func (d *orderDomain) CancelOrder(
	ctx context.Context, req *model.CancelOrderRequest,
) (resp *model.CancelOrderResponse, err error) {
	defer func() { common.ObserveLedgerOperation("cancel_order", err) }()

	now := xcontext.Now(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	order, err := d.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.OrderNotFound, "Not found order %s", req.OrderID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get order: %v", err)
		return nil, errorx.Unknown
	}

	if order.Status == entity.OrderCanceled {
		return nil, errorx.New(errorx.OrderAlreadyCanceled, "Order %s is already canceled", order.ID)
	}

	if order.Status != entity.OrderPlaced {
		return nil, errorx.New(errorx.OrderCancelNotAllowed,
			"Order %s in status %s cannot be canceled", order.ID, order.Status)
	}

	if err := d.orderRepo.Cancel(ctx, order.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.OrderAlreadyCanceled, "Order %s is already canceled", order.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot cancel order: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.productDomain.IncrementStock(ctx, order.ProductID, int64(order.Quantity)); err != nil {
		return nil, err
	}

	unit, err := d.pointDomain.CreditRefund(ctx, order.UserID, order.PointsCharged, order.ID)
	if err != nil {
		return nil, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit order cancellation: %v", err)
		return nil, errorx.Unknown
	}

	d.eventPublisher.publish(ctx, model.LedgerEvent{
		Type:        EventOrderCanceled,
		UserID:      order.UserID,
		ReferenceID: order.ID,
		Points:      order.PointsCharged,
		OccurredAt:  now,
	})

	order.Status = entity.OrderCanceled
	order.CanceledAt.Time, order.CanceledAt.Valid = now, true
	return &model.CancelOrderResponse{
		Order:          convertOrder(order),
		RefundedPoints: order.PointsCharged,
		RefundUnitID:   unit.ID,
	}, nil
}

// UpdateOrderStatus moves an order between the states which do not touch the
// ledger. Canceling goes through CancelOrder only.
func (d *orderDomain) UpdateOrderStatus(
	ctx context.Context, req *model.UpdateOrderStatusRequest,
) (*model.UpdateOrderStatusResponse, error) {
	status, err := enum.ToEnum[entity.OrderStatus](req.Status)
	if err != nil {
		return nil, errorx.New(errorx.OrderInvalidRequest, "Invalid order status %s", req.Status)
	}

	if !slices.Contains([]entity.OrderStatus{entity.OrderPlaced, entity.OrderCompleted}, status) {
		return nil, errorx.New(errorx.OrderStatusChangeNotAllowed, "Cannot change order status to %s", status)
	}

	order, err := d.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.OrderNotFound, "Not found order %s", req.OrderID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get order: %v", err)
		return nil, errorx.Unknown
	}

	if order.Status == entity.OrderCanceled {
		return nil, errorx.New(errorx.OrderStatusChangeNotAllowed, "Order %s is already canceled", order.ID)
	}

	if order.Status == status {
		return &model.UpdateOrderStatusResponse{Order: convertOrder(order)}, nil
	}

	if err := d.orderRepo.UpdateStatus(ctx, order.ID, order.Status, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.OrderStatusChangeNotAllowed,
				"Order %s was changed concurrently", order.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot update order status: %v", err)
		return nil, errorx.Unknown
	}

	order.Status = status
	return &model.UpdateOrderStatusResponse{Order: convertOrder(order)}, nil
}

func (d *orderDomain) GetOrders(
	ctx context.Context, req *model.GetOrdersRequest,
) (*model.GetOrdersResponse, error) {
	orders, err := d.getOrders(ctx, 0, req.Status, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetOrdersResponse{Orders: orders}, nil
}

func (d *orderDomain) GetMyOrders(
	ctx context.Context, req *model.GetMyOrdersRequest,
) (*model.GetMyOrdersResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	orders, err := d.getOrders(ctx, req.UserID, req.Status, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetMyOrdersResponse{Orders: orders}, nil
}

func (d *orderDomain) getOrders(
	ctx context.Context, userID int64, status string, offset, limit int,
) ([]model.Order, error) {
	filter := repository.OrderFilter{UserID: userID, Offset: offset, Limit: pageLimit(limit)}
	if status != "" {
		s, err := enum.ToEnum[entity.OrderStatus](status)
		if err != nil {
			return nil, errorx.New(errorx.OrderInvalidRequest, "Invalid order status %s", status)
		}

		filter.Status = s
	}

	orders, err := d.orderRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get orders: %v", err)
		return nil, errorx.Unknown
	}

	clientOrders := []model.Order{}
	for _, o := range orders {
		clientOrders = append(clientOrders, convertOrder(&o))
	}

	return clientOrders, nil
}
