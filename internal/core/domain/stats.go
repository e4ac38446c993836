package domain

// DashboardStats are derived aggregates computed on read, never persisted.
type DashboardStats struct {
	TotalProducts int          `json:"totalProducts"`
	TodaySales    int          `json:"todaySales"`
	TodayRevenue  float64      `json:"todayRevenue"`
	PendingDebts  int          `json:"pendingDebts"`
	TotalDebts    float64      `json:"totalDebts"`
	LowStockItems int          `json:"lowStockItems"`
	RecentSales   []RecentSale `json:"recentSales"`
}
