package main

import (
	"encoding/json"

	"github.com/pointroulette/backend/internal/model"
	"github.com/urfave/cli/v2"
)

// writeJSON prints the response of an admin command.
func writeJSON(cctx *cli.Context, v any) error {
	encoder := json.NewEncoder(cctx.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (s *srv) showBudget(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.budgetDomain.GetBudget(s.ctx, &model.GetBudgetRequest{Date: cctx.String("date")})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) resizeBudget(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.budgetDomain.ResizeBudget(s.ctx, &model.ResizeBudgetRequest{
		Date:        cctx.String("date"),
		TotalPoints: cctx.Int64("total"),
	})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) listParticipations(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.rouletteDomain.GetParticipants(s.ctx, &model.GetParticipantsRequest{Date: cctx.String("date")})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) cancelParticipation(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.reversalDomain.CancelParticipation(s.ctx, &model.CancelParticipationRequest{
		ParticipationID: cctx.String("id"),
	})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) listOrders(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.orderDomain.GetOrders(s.ctx, &model.GetOrdersRequest{Status: cctx.String("status")})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) cancelOrder(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.orderDomain.CancelOrder(s.ctx, &model.CancelOrderRequest{OrderID: cctx.String("id")})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) updateOrderStatus(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.orderDomain.UpdateOrderStatus(s.ctx, &model.UpdateOrderStatusRequest{
		OrderID: cctx.String("id"),
		Status:  cctx.String("status"),
	})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) listProducts(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.productDomain.GetList(s.ctx, &model.GetProductsRequest{ActiveOnly: cctx.Bool("active")})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) createProduct(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.productDomain.Create(s.ctx, &model.CreateProductRequest{
		Name:        cctx.String("name"),
		Description: cctx.String("description"),
		Price:       cctx.Int64("price"),
		Stock:       cctx.Int64("stock"),
	})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) showBalance(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.pointDomain.GetBalance(s.ctx, &model.GetBalanceRequest{UserID: cctx.Int64("user")})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}

func (s *srv) listPointTransactions(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.pointDomain.GetPointTransactions(s.ctx, &model.GetPointTransactionsRequest{
		UserID: cctx.Int64("user"),
	})
	if err != nil {
		return err
	}

	return writeJSON(cctx, resp)
}
