package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

type BudgetDomain interface {
	Ensure(ctx context.Context, date string, defaultTotal int64) error
	Allocate(ctx context.Context, date string, amount int64) error
	Release(ctx context.Context, date string, amount int64) error
	GetBudget(context.Context, *model.GetBudgetRequest) (*model.GetBudgetResponse, error)
	ResizeBudget(context.Context, *model.ResizeBudgetRequest) (*model.ResizeBudgetResponse, error)
}

type budgetDomain struct {
	budgetRepo repository.BudgetRepository

	// knownDates holds the dates whose row is known to be committed.
	knownDates *xsync.MapOf[string, struct{}]
}

func NewBudgetDomain(budgetRepo repository.BudgetRepository) *budgetDomain {
	return &budgetDomain{
		budgetRepo: budgetRepo,
		knownDates: xsync.NewMapOf[struct{}](),
	}
}

func (d *budgetDomain) Ensure(ctx context.Context, date string, defaultTotal int64) error {
	if _, ok := d.knownDates.Load(date); ok {
		return nil
	}

	created, err := d.budgetRepo.CreateIfNotExists(ctx, &entity.DailyBudget{
		Base:        entity.Base{ID: uuid.NewString()},
		BudgetDate:  date,
		TotalPoints: defaultTotal,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure budget of %s: %v", date, err)
		return errorx.Unknown
	}

	// A row created by this call may still be rolled back.
	if !created {
		d.knownDates.Store(date, struct{}{})
	}

	return nil
}

func (d *budgetDomain) Allocate(ctx context.Context, date string, amount int64) error {
	if amount <= 0 {
		return errorx.New(errorx.InvalidRequest, "Allocated points must be positive")
	}

	if err := d.budgetRepo.Allocate(ctx, date, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.BudgetInsufficient, "Budget of %s is insufficient", date)
		}

		xcontext.Logger(ctx).Errorf("Cannot allocate budget: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *budgetDomain) Release(ctx context.Context, date string, amount int64) error {
	if amount <= 0 {
		return errorx.New(errorx.InvalidRequest, "Released points must be positive")
	}

	if err := d.budgetRepo.Release(ctx, date, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot release %d points from budget of %s", amount, date)
			return errorx.New(errorx.BudgetReleaseFailed, "Cannot release budget of %s", date)
		}

		xcontext.Logger(ctx).Errorf("Cannot release budget: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *budgetDomain) GetBudget(
	ctx context.Context, req *model.GetBudgetRequest,
) (*model.GetBudgetResponse, error) {
	date, err := requestDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	if err := d.Ensure(ctx, date, xcontext.Configs(ctx).Ledger.DefaultDailyBudget); err != nil {
		return nil, err
	}

	budget, err := d.budgetRepo.GetByDate(ctx, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get budget: %v", err)
		return nil, errorx.Unknown
	}

	if !xcontext.InTransaction(ctx) {
		d.knownDates.Store(date, struct{}{})
	}

	return &model.GetBudgetResponse{Budget: convertBudget(budget)}, nil
}

func (d *budgetDomain) ResizeBudget(
	ctx context.Context, req *model.ResizeBudgetRequest,
) (resp *model.ResizeBudgetResponse, err error) {
	defer func() { common.ObserveLedgerOperation("resize_budget", err) }()

	if req.TotalPoints < 0 {
		return nil, errorx.New(errorx.BudgetInvalidTotal, "Total points must not be negative")
	}

	date, err := requestDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.Ensure(ctx, date, req.TotalPoints); err != nil {
		return nil, err
	}

	if err := d.budgetRepo.Resize(ctx, date, req.TotalPoints); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BudgetTotalLessThanUsed,
				"Total points of %s must not be less than used points", date)
		}

		xcontext.Logger(ctx).Errorf("Cannot resize budget: %v", err)
		return nil, errorx.Unknown
	}

	budget, err := d.budgetRepo.GetByDate(ctx, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get budget: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit budget resize: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ResizeBudgetResponse{Budget: convertBudget(budget)}, nil
}
