package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/database"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RouletteDomain interface {
	Participate(context.Context, *model.ParticipateRequest) (*model.ParticipateResponse, error)
	GetTodayStatus(context.Context, *model.GetTodayStatusRequest) (*model.GetTodayStatusResponse, error)
	GetParticipants(context.Context, *model.GetParticipantsRequest) (*model.GetParticipantsResponse, error)
}

type rouletteDomain struct {
	participationRepo repository.ParticipationRepository
	budgetRepo        repository.BudgetRepository
	budgetDomain      BudgetDomain
	pointDomain       PointDomain
	rewardSelector    RewardSelector
	eventPublisher    *ledgerEventPublisher
}

func NewRouletteDomain(
	participationRepo repository.ParticipationRepository,
	budgetRepo repository.BudgetRepository,
	budgetDomain BudgetDomain,
	pointDomain PointDomain,
	rewardSelector RewardSelector,
	publisher pubsub.Publisher,
) *rouletteDomain {
	return &rouletteDomain{
		participationRepo: participationRepo,
		budgetRepo:        budgetRepo,
		budgetDomain:      budgetDomain,
		pointDomain:       pointDomain,
		rewardSelector:    rewardSelector,
		eventPublisher:    newLedgerEventPublisher(publisher),
	}
}

// Participate spins the roulette once for the user on the date. The reward is
// drawn before the budget is allocated and is not drawn again if the budget
// cannot cover it.
func (d *rouletteDomain) Participate(
	ctx context.Context, req *model.ParticipateRequest,
) (resp *model.ParticipateResponse, err error) {
	defer func() { common.ObserveLedgerOperation("participate", err) }()

	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	date, err := requestDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	now := xcontext.Now(ctx)
	cfg := xcontext.Configs(ctx).Ledger

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err = d.participationRepo.GetActive(ctx, req.UserID, date)
	if err == nil {
		return nil, errorx.New(errorx.RouletteAlreadyParticipatedToday,
			"User %d already participated on %s", req.UserID, date)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get active participation: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.budgetDomain.Ensure(ctx, date, cfg.DefaultDailyBudget); err != nil {
		return nil, err
	}

	if _, err := d.pointDomain.SweepUserExpired(ctx, req.UserID, now); err != nil {
		return nil, err
	}

	reward := d.rewardSelector.Select(ctx)
	if err := d.budgetDomain.Allocate(ctx, date, reward); err != nil {
		return nil, err
	}

	participation := &entity.Participation{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          req.UserID,
		ParticipateDate: date,
		ActiveKey: sql.NullString{
			String: entity.ParticipationActiveKey(req.UserID, date),
			Valid:  true,
		},
		AwardedPoints: reward,
		AwardedAt:     now,
		ExpiresAt:     now.Add(cfg.PointExpiration.Duration),
	}

	if err := d.participationRepo.Create(ctx, participation); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.RouletteAlreadyParticipatedToday,
				"User %d already participated on %s", req.UserID, date)
		}

		xcontext.Logger(ctx).Errorf("Cannot create participation: %v", err)
		return nil, errorx.Unknown
	}

	unit, err := d.pointDomain.Grant(ctx, req.UserID, entity.PointEventRouletteReward, reward,
		participation.AwardedAt, participation.ExpiresAt,
		model.PointSource{ParticipationID: participation.ID})
	if err != nil {
		return nil, err
	}

	budget, err := d.budgetRepo.GetByDate(ctx, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get budget: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit participation: %v", err)
		return nil, errorx.Unknown
	}

	d.eventPublisher.publish(ctx, model.LedgerEvent{
		Type:        EventParticipated,
		UserID:      req.UserID,
		ReferenceID: participation.ID,
		Points:      reward,
		OccurredAt:  now,
	})

	return &model.ParticipateResponse{
		Participation:   convertParticipation(participation),
		PointUnitID:     unit.ID,
		RemainingBudget: budget.RemainingPoints(),
	}, nil
}

func (d *rouletteDomain) GetTodayStatus(
	ctx context.Context, req *model.GetTodayStatusRequest,
) (*model.GetTodayStatusResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	date, err := requestDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	if err := d.budgetDomain.Ensure(ctx, date, xcontext.Configs(ctx).Ledger.DefaultDailyBudget); err != nil {
		return nil, err
	}

	budget, err := d.budgetRepo.GetByDate(ctx, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get budget: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetTodayStatusResponse{RemainingBudget: budget.RemainingPoints()}
	participation, err := d.participationRepo.GetActive(ctx, req.UserID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get active participation: %v", err)
		return nil, errorx.Unknown
	}

	clientParticipation := convertParticipation(participation)
	resp.Participated = true
	resp.Participation = &clientParticipation
	return resp, nil
}

func (d *rouletteDomain) GetParticipants(
	ctx context.Context, req *model.GetParticipantsRequest,
) (*model.GetParticipantsResponse, error) {
	date, err := requestDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	stats, err := d.participationRepo.GetStatsByDate(ctx, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participation stats: %v", err)
		return nil, errorx.Unknown
	}

	participations, err := d.participationRepo.GetByDate(ctx, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participations: %v", err)
		return nil, errorx.Unknown
	}

	clientParticipations := []model.Participation{}
	for _, p := range participations {
		clientParticipations = append(clientParticipations, convertParticipation(&p))
	}

	return &model.GetParticipantsResponse{
		Date:               date,
		Count:              stats.Count,
		TotalAwardedPoints: stats.AwardedPoints,
		Participations:     clientParticipations,
	}, nil
}
