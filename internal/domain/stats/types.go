package stats

// Bucket is one row of a GROUP BY result; Key is the grouped column
// value (status, type, platform or priority).
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// OperatorLoad is the per-operator request workload.
type OperatorLoad struct {
	OperatorID   uint   `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	Total        int64  `json:"total"`
	Open         int64  `json:"open"`
	Completed    int64  `json:"completed"`
}

// MonthlyPoint is one month of the created/completed time series.
type MonthlyPoint struct {
	Month     string `json:"month"`
	Created   int64  `json:"created"`
	Completed int64  `json:"completed"`
}

// Overview is the admin statistics payload. Every figure is computed
// by the store with grouped queries, never by reducing full row sets
// in the caller.
type Overview struct {
	TotalRequests      int64          `json:"total_requests"`
	TotalClients       int64          `json:"total_clients"`
	TotalOperators     int64          `json:"total_operators"`
	ByStatus           []Bucket       `json:"by_status"`
	ByType             []Bucket       `json:"by_type"`
	ByPlatform         []Bucket       `json:"by_platform"`
	ByPriority         []Bucket       `json:"by_priority"`
	CompletionRate     float64        `json:"completion_rate"`
	AvgCompletionHours float64        `json:"avg_completion_hours"`
	OperatorLoads      []OperatorLoad `json:"operator_loads"`
	Monthly            []MonthlyPoint `json:"monthly"`
}
