package entity

// AccountStatistics is the dashboard snapshot of account counts.
type AccountStatistics struct {
	Total            int64   `json:"total_users"`
	Active           int64   `json:"active_users"`
	Inactive         int64   `json:"inactive_users"`
	CreatedToday     int64   `json:"users_today"`
	CreatedThisWeek  int64   `json:"users_week"`
	CreatedThisMonth int64   `json:"users_month"`
	ActivePercentage float64 `json:"active_percentage"` // One decimal place
}

// MonthlyRegistration is the number of accounts created in one calendar month.
type MonthlyRegistration struct {
	Month string `json:"month"`     // Three-letter uppercase abbreviation, e.g. "JAN"
	Year  int    `json:"year"`
	Count int64  `json:"count"`
	Key   string `json:"full_date"` // YYYY-MM
}
