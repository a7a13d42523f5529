package model

// AdminStats is a live aggregate over the product and order
// collections. It is recomputed on every request and never persisted.
type AdminStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalSales    float64 `json:"total_sales"`
	PendingOrders int64   `json:"pending_orders"`
	TodayOrders   int64   `json:"today_orders"`
	TodaySales    float64 `json:"today_sales"`
}
