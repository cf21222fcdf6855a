package model

type Budget struct {
	Date            string `json:"date"`
	TotalPoints     int64  `json:"total_points"`
	UsedPoints      int64  `json:"used_points"`
	RemainingPoints int64  `json:"remaining_points"`
}

type GetBudgetRequest struct {
	Date string `json:"date"`
}

type GetBudgetResponse struct {
	Budget Budget `json:"budget"`
}

type ResizeBudgetRequest struct {
	Date        string `json:"date"`
	TotalPoints int64  `json:"total_points"`
}

type ResizeBudgetResponse struct {
	Budget Budget `json:"budget"`
}
