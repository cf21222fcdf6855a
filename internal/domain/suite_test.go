package domain

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/jonboulle/clockwork"
	"github.com/pointroulette/backend/internal/entity"
	"github.com/pointroulette/backend/internal/model"
	"github.com/pointroulette/backend/internal/repository"
	"github.com/pointroulette/backend/pkg/pubsub"
	"github.com/pointroulette/backend/pkg/testutil"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// fixedRewardSelector always draws the same reward.
type fixedRewardSelector struct {
	points int64
}

func (s fixedRewardSelector) Select(context.Context) int64 {
	return s.points
}

// ledger wires every domain on a fresh database.
type ledger struct {
	ctx   context.Context
	clock *clockwork.FakeClock

	participationRepo repository.ParticipationRepository
	budgetRepo        repository.BudgetRepository
	pointUnitRepo     repository.PointUnitRepository
	productRepo       repository.ProductRepository
	orderRepo         repository.OrderRepository
	pointTxRepo       repository.PointTransactionRepository

	reward    int64
	publisher pubsub.Publisher

	budget   *budgetDomain
	point    *pointDomain
	product  *productDomain
	roulette *rouletteDomain
	order    *orderDomain
	reversal *reversalDomain
}

func newLedger(t *testing.T, reward int64) *ledger {
	return newLedgerWithPublisher(t, reward, nil)
}

func newLedgerWithPublisher(t *testing.T, reward int64, publisher pubsub.Publisher) *ledger {
	ctx, clock := testutil.MockContextWithClock()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	l := &ledger{
		ctx:               ctx,
		clock:             clock,
		participationRepo: repository.NewParticipationRepository(),
		budgetRepo:        repository.NewBudgetRepository(),
		pointUnitRepo:     repository.NewPointUnitRepository(),
		productRepo:       repository.NewProductRepository(),
		orderRepo:         repository.NewOrderRepository(),
		pointTxRepo:       repository.NewPointTransactionRepository(node),
		reward:            reward,
		publisher:         publisher,
	}

	l.wire()
	return l
}

// wire builds the domains from the current repositories, so a test can swap
// one repository and rewire.
func (l *ledger) wire() {
	l.budget = NewBudgetDomain(l.budgetRepo)
	l.point = NewPointDomain(l.pointUnitRepo, l.pointTxRepo)
	l.product = NewProductDomain(l.productRepo)
	l.roulette = NewRouletteDomain(l.participationRepo, l.budgetRepo, l.budget, l.point,
		fixedRewardSelector{points: l.reward}, l.publisher)
	l.order = NewOrderDomain(l.orderRepo, l.productRepo, l.product, l.point, l.publisher)
	l.reversal = NewReversalDomain(l.participationRepo, l.budgetRepo, l.budget, l.point, l.publisher)
}

func (l *ledger) setBudget(t *testing.T, total int64) {
	_, err := l.budget.ResizeBudget(l.ctx, &model.ResizeBudgetRequest{TotalPoints: total})
	require.NoError(t, err)
}

func (l *ledger) getBudget(t *testing.T) model.Budget {
	resp, err := l.budget.GetBudget(l.ctx, &model.GetBudgetRequest{})
	require.NoError(t, err)
	return resp.Budget
}

func (l *ledger) participate(t *testing.T, userID int64) *model.ParticipateResponse {
	resp, err := l.roulette.Participate(l.ctx, &model.ParticipateRequest{UserID: userID})
	require.NoError(t, err)
	return resp
}

func (l *ledger) createProduct(t *testing.T, name string, price, stock int64) string {
	resp, err := l.product.Create(l.ctx, &model.CreateProductRequest{
		Name:        name,
		Description: "A " + name,
		Price:       price,
		Stock:       stock,
	})
	require.NoError(t, err)
	return resp.Product.ID
}

func (l *ledger) createOrder(t *testing.T, userID int64, productID string, quantity int) *model.CreateOrderResponse {
	resp, err := l.order.CreateOrder(l.ctx, &model.CreateOrderRequest{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return resp
}

func (l *ledger) balance(t *testing.T, userID int64) int64 {
	resp, err := l.point.GetBalance(l.ctx, &model.GetBalanceRequest{UserID: userID})
	require.NoError(t, err)
	return resp.AvailablePoints
}

func (l *ledger) stock(t *testing.T, productID string) int64 {
	product, err := l.productRepo.GetByID(l.ctx, productID)
	require.NoError(t, err)
	return product.Stock
}

// requireConsistent checks the ledger as a whole: the budget covers exactly
// the active rewards, units stay within their original amount and every
// balance matches its transaction log. It does not hold once units expired.
func (l *ledger) requireConsistent(t *testing.T) {
	db := xcontext.DB(l.ctx)

	var budgets []entity.DailyBudget
	require.NoError(t, db.Find(&budgets).Error)
	for _, b := range budgets {
		require.GreaterOrEqual(t, b.UsedPoints, int64(0))
		require.LessOrEqual(t, b.UsedPoints, b.TotalPoints)

		var awarded int64
		require.NoError(t, db.Model(&entity.Participation{}).
			Select("COALESCE(SUM(awarded_points), 0)").
			Where("participate_date=? AND canceled=?", b.BudgetDate, false).
			Scan(&awarded).Error)
		require.Equal(t, awarded, b.UsedPoints, "budget of %s", b.BudgetDate)
	}

	var units []entity.PointUnit
	require.NoError(t, db.Find(&units).Error)
	held := map[int64]int64{}
	for _, u := range units {
		require.GreaterOrEqual(t, u.RemainingAmount, int64(0))
		require.LessOrEqual(t, u.RemainingAmount, u.OriginalAmount)
		if u.Status != entity.PointUnitAvailable {
			require.Equal(t, int64(0), u.RemainingAmount)
		}
		held[u.UserID] += u.RemainingAmount
	}

	var txs []entity.PointTransaction
	require.NoError(t, db.Find(&txs).Error)
	logged := map[int64]int64{}
	for _, tx := range txs {
		if tx.Direction == entity.PointCredit {
			logged[tx.UserID] += tx.Amount
		} else {
			logged[tx.UserID] -= tx.Amount
		}
	}

	for userID, amount := range held {
		require.Equal(t, logged[userID], amount, "balance of user %d", userID)
	}

	var products []entity.Product
	require.NoError(t, db.Unscoped().Find(&products).Error)
	for _, p := range products {
		require.GreaterOrEqual(t, p.Stock, int64(0))
	}
}
