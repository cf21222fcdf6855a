package domain

import (
	"context"
	"errors"

	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ReversalDomain interface {
	CancelParticipation(context.Context, *model.CancelParticipationRequest) (*model.CancelParticipationResponse, error)
}

type reversalDomain struct {
	participationRepo repository.ParticipationRepository
	budgetRepo        repository.BudgetRepository
	budgetDomain      BudgetDomain
	pointDomain       PointDomain
	eventPublisher    *ledgerEventPublisher
}

func NewReversalDomain(
	participationRepo repository.ParticipationRepository,
	budgetRepo repository.BudgetRepository,
	budgetDomain BudgetDomain,
	pointDomain PointDomain,
	publisher pubsub.Publisher,
) *reversalDomain {
	return &reversalDomain{
		participationRepo: participationRepo,
		budgetRepo:        budgetRepo,
		budgetDomain:      budgetDomain,
		pointDomain:       pointDomain,
		eventPublisher:    newLedgerEventPublisher(publisher),
	}
}

// CancelParticipation takes back the reward of a participation. It is refused
// once any of the rewarded points was spent.
func (d *reversalDomain) CancelParticipation(
	ctx context.Context, req *model.CancelParticipationRequest,
) (resp *model.CancelParticipationResponse, err error) {
	defer func() { common.ObserveLedgerOperation("cancel_participation", err) }()

	now := xcontext.Now(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	participation, err := d.participationRepo.GetByID(ctx, req.ParticipationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RouletteParticipationNotFound,
				"Not found participation %s", req.ParticipationID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get participation: %v", err)
		return nil, errorx.Unknown
	}

	if participation.Canceled {
		return nil, errorx.New(errorx.RouletteParticipationAlreadyCanceled,
			"Participation %s is already canceled", participation.ID)
	}

	if _, err := d.pointDomain.SweepUserExpired(ctx, participation.UserID, now); err != nil {
		return nil, err
	}

	recoverable, err := d.pointDomain.Recoverable(ctx, participation.ID, now)
	if err != nil {
		return nil, err
	}

	if recoverable < participation.AwardedPoints {
		return nil, errorx.New(errorx.PointAlreadyUsed,
			"Only %d of %d points of participation %s are left",
			recoverable, participation.AwardedPoints, participation.ID)
	}

	if err := d.participationRepo.Cancel(ctx, participation.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RouletteParticipationAlreadyCanceled,
				"Participation %s is already canceled", participation.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot cancel participation: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.budgetDomain.Release(ctx, participation.ParticipateDate, participation.AwardedPoints); err != nil {
		return nil, err
	}

	revoked, err := d.pointDomain.CancelBySource(ctx, participation.ID)
	if err != nil {
		return nil, err
	}

	if revoked != participation.AwardedPoints {
		return nil, errorx.New(errorx.PointAlreadyUsed,
			"Only %d of %d points of participation %s were revoked",
			revoked, participation.AwardedPoints, participation.ID)
	}

	budget, err := d.budgetRepo.GetByDate(ctx, participation.ParticipateDate)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get budget: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit participation cancellation: %v", err)
		return nil, errorx.Unknown
	}

	d.eventPublisher.publish(ctx, model.LedgerEvent{
		Type:        EventParticipationCanceled,
		UserID:      participation.UserID,
		ReferenceID: participation.ID,
		Points:      revoked,
		OccurredAt:  now,
	})

	participation.Canceled = true
	participation.CanceledAt.Time, participation.CanceledAt.Valid = now, true
	participation.ActiveKey.Valid = false
	return &model.CancelParticipationResponse{
		Participation:   convertParticipation(participation),
		RevokedPoints:   revoked,
		RemainingBudget: budget.RemainingPoints(),
	}, nil
}
