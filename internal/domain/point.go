package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pointroulette/backend/internal/common"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/errorx"
	"github.com/pointroulette/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PointDomain interface {
	Grant(ctx context.Context, userID int64, eventType entity.PointEventType, amount int64,
		earnedAt, expiresAt time.Time, source model.PointSource) (*entity.PointUnit, error)
	DebitFIFO(ctx context.Context, userID, amount int64, asOf time.Time, orderID string) ([]model.PointConsumption, error)
	CreditRefund(ctx context.Context, userID, amount int64, orderID string) (*entity.PointUnit, error)
	CancelBySource(ctx context.Context, participationID string) (int64, error)
	SweepExpired(ctx context.Context, asOf time.Time) (int64, error)
	SweepUserExpired(ctx context.Context, userID int64, asOf time.Time) (int64, error)
	SumAvailable(ctx context.Context, userID int64, asOf time.Time) (int64, error)
	Recoverable(ctx context.Context, participationID string, asOf time.Time) (int64, error)

	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetExpiringPoints(context.Context, *model.GetExpiringPointsRequest) (*model.GetExpiringPointsResponse, error)
	GetPointUnits(context.Context, *model.GetPointUnitsRequest) (*model.GetPointUnitsResponse, error)
	GetPointTransactions(context.Context, *model.GetPointTransactionsRequest) (*model.GetPointTransactionsResponse, error)
}

type pointDomain struct {
	pointUnitRepo        repository.PointUnitRepository
	pointTransactionRepo repository.PointTransactionRepository
}

func NewPointDomain(
	pointUnitRepo repository.PointUnitRepository,
	pointTransactionRepo repository.PointTransactionRepository,
) *pointDomain {
	return &pointDomain{
		pointUnitRepo:        pointUnitRepo,
		pointTransactionRepo: pointTransactionRepo,
	}
}

// Grant creates an available unit of amount points and logs the credit.
func (d *pointDomain) Grant(
	ctx context.Context,
	userID int64,
	eventType entity.PointEventType,
	amount int64,
	earnedAt, expiresAt time.Time,
	source model.PointSource,
) (*entity.PointUnit, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, errorx.New(errorx.InvalidRequest, "Granted points must be positive")
	}

	if !expiresAt.After(earnedAt) {
		return nil, errorx.New(errorx.InvalidRequest, "Points must expire after they are earned")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	unit := &entity.PointUnit{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          userID,
		EventType:       eventType,
		OriginalAmount:  amount,
		RemainingAmount: amount,
		EarnedAt:        earnedAt.UTC(),
		ExpiresAt:       expiresAt.UTC(),
		Status:          entity.PointUnitAvailable,
		ParticipationID: nullString(source.ParticipationID),
		OrderID:         nullString(source.OrderID),
	}

	if err := d.pointUnitRepo.Create(ctx, unit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point unit: %v", err)
		return nil, errorx.Unknown
	}

	err := d.pointTransactionRepo.Create(ctx, &entity.PointTransaction{
		UserID:          userID,
		EventType:       eventType,
		Direction:       entity.PointCredit,
		Amount:          amount,
		PointUnitID:     unit.ID,
		ParticipationID: unit.ParticipationID,
		OrderID:         unit.OrderID,
		OccurredAt:      earnedAt.UTC(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point transaction: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit point grant: %v", err)
		return nil, errorx.Unknown
	}

	return unit, nil
}

// DebitFIFO takes amount points from the available units of the user,
// soonest expiring first. Either the whole amount is taken or nothing is.
func (d *pointDomain) DebitFIFO(
	ctx context.Context, userID, amount int64, asOf time.Time, orderID string,
) ([]model.PointConsumption, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, errorx.New(errorx.InvalidRequest, "Debited points must be positive")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	units, err := d.pointUnitRepo.GetAvailableByUserID(ctx, userID, asOf)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get available point units: %v", err)
		return nil, errorx.Unknown
	}

	need := amount
	consumptions := []model.PointConsumption{}
	txs := []*entity.PointTransaction{}
	for _, unit := range units {
		if need == 0 {
			break
		}

		take := min(unit.RemainingAmount, need)
		if take <= 0 {
			continue
		}

		if err := d.pointUnitRepo.Deduct(ctx, unit.ID, take); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.PointDeductionConflict,
					"Point unit %s was changed during deduction", unit.ID)
			}

			xcontext.Logger(ctx).Errorf("Cannot deduct point unit: %v", err)
			return nil, errorx.Unknown
		}

		need -= take
		consumptions = append(consumptions, model.PointConsumption{PointUnitID: unit.ID, Amount: take})
		txs = append(txs, &entity.PointTransaction{
			UserID:      userID,
			EventType:   entity.PointEventOrderUse,
			Direction:   entity.PointDebit,
			Amount:      take,
			PointUnitID: unit.ID,
			OrderID:     nullString(orderID),
			OccurredAt:  asOf.UTC(),
		})
	}

	if need > 0 {
		return nil, errorx.New(errorx.PointBalanceInsufficient,
			"Point balance is insufficient, need %d more points", need)
	}

	if err := d.pointTransactionRepo.Create(ctx, txs...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point transactions: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit point debit: %v", err)
		return nil, errorx.Unknown
	}

	return consumptions, nil
}

// CreditRefund grants a fresh unit instead of restoring the debited ones.
func (d *pointDomain) CreditRefund(
	ctx context.Context, userID, amount int64, orderID string,
) (*entity.PointUnit, error) {
	now := xcontext.Now(ctx)
	expiration := xcontext.Configs(ctx).Ledger.PointExpiration.Duration
	return d.Grant(ctx, userID, entity.PointEventOrderRefund, amount,
		now, now.Add(expiration), model.PointSource{OrderID: orderID})
}

// CancelBySource cancels the untouched units of the participation and returns
// the revoked points. It fails with POINT_ALREADY_USED if any of those units
// was touched between reading and canceling them.
func (d *pointDomain) CancelBySource(ctx context.Context, participationID string) (int64, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	units, err := d.pointUnitRepo.GetByParticipationID(ctx, participationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point units of participation: %v", err)
		return 0, errorx.Unknown
	}

	now := xcontext.Now(ctx)
	revoked := int64(0)
	txs := []*entity.PointTransaction{}
	for _, unit := range units {
		if unit.Status != entity.PointUnitAvailable || unit.RemainingAmount != unit.OriginalAmount {
			continue
		}

		revoked += unit.RemainingAmount
		txs = append(txs, &entity.PointTransaction{
			UserID:          unit.UserID,
			EventType:       entity.PointEventRouletteRevoke,
			Direction:       entity.PointDebit,
			Amount:          unit.RemainingAmount,
			PointUnitID:     unit.ID,
			ParticipationID: unit.ParticipationID,
			OccurredAt:      now,
		})
	}

	canceled, err := d.pointUnitRepo.CancelByParticipationID(ctx, participationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel point units: %v", err)
		return 0, errorx.Unknown
	}

	if canceled != int64(len(txs)) {
		return 0, errorx.New(errorx.PointAlreadyUsed, "Points of participation %s were used", participationID)
	}

	if err := d.pointTransactionRepo.Create(ctx, txs...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point transactions: %v", err)
		return 0, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit point cancellation: %v", err)
		return 0, errorx.Unknown
	}

	return revoked, nil
}

func (d *pointDomain) SweepExpired(ctx context.Context, asOf time.Time) (int64, error) {
	n, err := d.pointUnitRepo.Expire(ctx, asOf)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire point units: %v", err)
		return 0, errorx.Unknown
	}

	common.PromCounters[common.LedgerSweptUnitTotal].WithLabelValues("sweep").Add(float64(n))
	return n, nil
}

func (d *pointDomain) SweepUserExpired(ctx context.Context, userID int64, asOf time.Time) (int64, error) {
	n, err := d.pointUnitRepo.ExpireByUserID(ctx, userID, asOf)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire point units of user: %v", err)
		return 0, errorx.Unknown
	}

	common.PromCounters[common.LedgerSweptUnitTotal].WithLabelValues("user").Add(float64(n))
	return n, nil
}

func (d *pointDomain) SumAvailable(ctx context.Context, userID int64, asOf time.Time) (int64, error) {
	total, err := d.pointUnitRepo.SumAvailable(ctx, userID, asOf)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum available points: %v", err)
		return 0, errorx.Unknown
	}

	return total, nil
}

// Recoverable returns the points of the participation which can still be
// clawed back.
// Recoverable returns the reward points of the participation that are still
// untouched and unexpired at asOf.
func (d *pointDomain) Recoverable(ctx context.Context, participationID string, asOf time.Time) (int64, error) {
	total, err := d.pointUnitRepo.SumRecoverable(ctx, participationID, asOf)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum recoverable points: %v", err)
		return 0, errorx.Unknown
	}

	return total, nil
}

func (d *pointDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	now := xcontext.Now(ctx)
	if _, err := d.SweepUserExpired(ctx, req.UserID, now); err != nil {
		return nil, err
	}

	available, err := d.SumAvailable(ctx, req.UserID, now)
	if err != nil {
		return nil, err
	}

	window := xcontext.Configs(ctx).Ledger.ExpiringSoonWindow.Duration
	expiring, err := d.pointUnitRepo.SumExpiring(ctx, req.UserID, now, now.Add(window))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum expiring points: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBalanceResponse{
		UserID:             req.UserID,
		AvailablePoints:    available,
		ExpiringSoonPoints: expiring,
	}, nil
}

func (d *pointDomain) GetExpiringPoints(
	ctx context.Context, req *model.GetExpiringPointsRequest,
) (*model.GetExpiringPointsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	if req.WithinDays < 1 {
		return nil, errorx.New(errorx.PointInvalidWithinDays, "Within days must be at least 1")
	}

	now := xcontext.Now(ctx)
	if _, err := d.SweepUserExpired(ctx, req.UserID, now); err != nil {
		return nil, err
	}

	units, err := d.pointUnitRepo.GetExpiringByUserID(ctx, req.UserID, now, now.AddDate(0, 0, req.WithinDays))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expiring point units: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetExpiringPointsResponse{Units: []model.PointUnit{}}
	for _, unit := range units {
		resp.TotalPoints += unit.RemainingAmount
		resp.Units = append(resp.Units, convertPointUnit(&unit))
	}

	return resp, nil
}

func (d *pointDomain) GetPointUnits(
	ctx context.Context, req *model.GetPointUnitsRequest,
) (*model.GetPointUnitsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	if _, err := d.SweepUserExpired(ctx, req.UserID, xcontext.Now(ctx)); err != nil {
		return nil, err
	}

	units, err := d.pointUnitRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point units: %v", err)
		return nil, errorx.Unknown
	}

	clientUnits := []model.PointUnit{}
	for _, unit := range units {
		clientUnits = append(clientUnits, convertPointUnit(&unit))
	}

	return &model.GetPointUnitsResponse{Units: clientUnits}, nil
}

func (d *pointDomain) GetPointTransactions(
	ctx context.Context, req *model.GetPointTransactionsRequest,
) (*model.GetPointTransactionsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	txs, err := d.pointTransactionRepo.GetByUserID(ctx, req.UserID, req.Offset, pageLimit(req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point transactions: %v", err)
		return nil, errorx.Unknown
	}

	clientTxs := []model.PointTransaction{}
	for _, tx := range txs {
		clientTxs = append(clientTxs, convertPointTransaction(&tx))
	}

	return &model.GetPointTransactionsResponse{Transactions: clientTxs}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
