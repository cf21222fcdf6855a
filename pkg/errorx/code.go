package errorx

type Code string

var Unknown = Error{Code: InternalError, Message: "Request failed"}

const (
	// Common codes
	InvalidRequest Code = "INVALID_REQUEST"
	InternalError  Code = "INTERNAL_ERROR"

	// Budget codes
	BudgetInsufficient      Code = "BUDGET_INSUFFICIENT"
	BudgetTotalLessThanUsed Code = "BUDGET_TOTAL_LESS_THAN_USED"
	BudgetInvalidTotal      Code = "BUDGET_INVALID_TOTAL"
	BudgetNotFound          Code = "BUDGET_NOT_FOUND"
	BudgetReleaseFailed     Code = "BUDGET_RELEASE_FAILED"

	// Point codes
	PointBalanceInsufficient Code = "POINT_BALANCE_INSUFFICIENT"
	PointAlreadyUsed         Code = "POINT_ALREADY_USED"
	PointDeductionConflict   Code = "POINT_DEDUCTION_CONFLICT"
	PointInvalidWithinDays   Code = "POINT_INVALID_WITHIN_DAYS"

	// Product codes
	ProductNotFound           Code = "PRODUCT_NOT_FOUND"
	ProductInactive           Code = "PRODUCT_INACTIVE"
	ProductStockInsufficient  Code = "PRODUCT_STOCK_INSUFFICIENT"
	ProductStockRestoreFailed Code = "PRODUCT_STOCK_RESTORE_FAILED"
	ProductInvalidRequest     Code = "PRODUCT_INVALID_REQUEST"
	ProductConflict           Code = "PRODUCT_CONFLICT"

	// Order codes
	OrderInvalidRequest         Code = "ORDER_INVALID_REQUEST"
	OrderNotFound               Code = "ORDER_NOT_FOUND"
	OrderAlreadyCanceled        Code = "ORDER_ALREADY_CANCELED"
	OrderCancelNotAllowed       Code = "ORDER_CANCEL_NOT_ALLOWED"
	OrderStatusChangeNotAllowed Code = "ORDER_STATUS_CHANGE_NOT_ALLOWED"

	// Roulette codes
	RouletteAlreadyParticipatedToday     Code = "ROULETTE_ALREADY_PARTICIPATED_TODAY"
	RouletteParticipationNotFound        Code = "ROULETTE_PARTICIPATION_NOT_FOUND"
	RouletteParticipationAlreadyCanceled Code = "ROULETTE_PARTICIPATION_ALREADY_CANCELED"
)

// Kind groups codes by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindExhausted
	KindInvariantRefusal
)

var kinds = map[Code]Kind{
	InvalidRequest:         KindBadRequest,
	BudgetInvalidTotal:     KindBadRequest,
	PointInvalidWithinDays: KindBadRequest,
	ProductInvalidRequest:  KindBadRequest,
	OrderInvalidRequest:    KindBadRequest,

	BudgetNotFound:                KindNotFound,
	ProductNotFound:               KindNotFound,
	OrderNotFound:                 KindNotFound,
	RouletteParticipationNotFound: KindNotFound,

	RouletteAlreadyParticipatedToday:     KindConflict,
	RouletteParticipationAlreadyCanceled: KindConflict,
	OrderAlreadyCanceled:                 KindConflict,
	OrderCancelNotAllowed:                KindConflict,
	OrderStatusChangeNotAllowed:          KindConflict,
	ProductConflict:                      KindConflict,
	ProductInactive:                      KindConflict,
	PointDeductionConflict:               KindConflict,

	BudgetInsufficient:       KindExhausted,
	PointBalanceInsufficient: KindExhausted,
	ProductStockInsufficient: KindExhausted,

	BudgetTotalLessThanUsed: KindInvariantRefusal,
	PointAlreadyUsed:        KindInvariantRefusal,
}

// Kind returns the taxonomy kind of c. Unlisted codes, such as
// BUDGET_RELEASE_FAILED, are internal errors.
func (c Code) Kind() Kind {
	return kinds[c]
}
