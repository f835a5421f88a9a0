package models

// CasinoStats holds the aggregate figures shown on the admin dashboard
type CasinoStats struct {
	TotalUsers     int64
	TotalStars     int64
	AverageBalance int64
}
