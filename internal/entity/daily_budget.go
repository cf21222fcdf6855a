package entity

// DailyBudget is the reward pool of one UTC calendar day. The guarded updates
// of the budget repository keep 0 <= UsedPoints <= TotalPoints.
type DailyBudget struct {
	Base

	BudgetDate  string `gorm:"uniqueIndex;size:10"`
	TotalPoints int64
	UsedPoints  int64
	Version     int64
}

func (b DailyBudget) RemainingPoints() int64 {
	return b.TotalPoints - b.UsedPoints
}
