package domain

import (
	"time"

	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
)

func convertBudget(budget *entity.DailyBudget) model.Budget {
	return model.Budget{
		Date:            budget.BudgetDate,
		TotalPoints:     budget.TotalPoints,
		UsedPoints:      budget.UsedPoints,
		RemainingPoints: budget.RemainingPoints(),
	}
}

func convertPointUnit(unit *entity.PointUnit) model.PointUnit {
	return model.PointUnit{
		ID:              unit.ID,
		UserID:          unit.UserID,
		EventType:       string(unit.EventType),
		OriginalAmount:  unit.OriginalAmount,
		RemainingAmount: unit.RemainingAmount,
		EarnedAt:        unit.EarnedAt,
		ExpiresAt:       unit.ExpiresAt,
		Status:          string(unit.Status),
		ParticipationID: unit.ParticipationID.String,
		OrderID:         unit.OrderID.String,
	}
}

func convertPointTransaction(tx *entity.PointTransaction) model.PointTransaction {
	return model.PointTransaction{
		ID:              tx.ID,
		UserID:          tx.UserID,
		EventType:       string(tx.EventType),
		Direction:       string(tx.Direction),
		Amount:          tx.Amount,
		PointUnitID:     tx.PointUnitID,
		ParticipationID: tx.ParticipationID.String,
		OrderID:         tx.OrderID.String,
		OccurredAt:      tx.OccurredAt,
	}
}

func convertProduct(product *entity.Product) model.Product {
	return model.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
	}
}

func convertOrder(order *entity.Order) model.Order {
	var canceledAt *time.Time
	if order.CanceledAt.Valid {
		t := order.CanceledAt.Time
		canceledAt = &t
	}

	return model.Order{
		ID:            order.ID,
		UserID:        order.UserID,
		ProductID:     order.ProductID,
		ProductName:   order.Product.Name,
		Quantity:      order.Quantity,
		PointsCharged: order.PointsCharged,
		Status:        string(order.Status),
		OrderedAt:     order.OrderedAt,
		CanceledAt:    canceledAt,
	}
}

func convertParticipation(participation *entity.Participation) model.Participation {
	var canceledAt *time.Time
	if participation.CanceledAt.Valid {
		t := participation.CanceledAt.Time
		canceledAt = &t
	}

	return model.Participation{
		ID:            participation.ID,
		UserID:        participation.UserID,
		Date:          participation.ParticipateDate,
		AwardedPoints: participation.AwardedPoints,
		AwardedAt:     participation.AwardedAt,
		ExpiresAt:     participation.ExpiresAt,
		Canceled:      participation.Canceled,
		CanceledAt:    canceledAt,
	}
}
