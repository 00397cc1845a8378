package model

// StatsSummary 儀表盤彙總，取消訂單不計入
type StatsSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	OrderCount     int     `json:"order_count"`
	TotalItemsSold int     `json:"total_items_sold"`
}

// ProductSalesDetail 單一商品銷售明細
type ProductSalesDetail struct {
	ProductID     int     `json:"product_id"`
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name"`
	UnitPrice     float64 `json:"unit_price"`
	InitialStock  int     `json:"initial_stock"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue_per_item"`
}

// EventStats 活動儀表盤
type EventStats struct {
	EventInfo      Event                `json:"event_info"`
	Summary        StatsSummary         `json:"summary"`
	ProductDetails []ProductSalesDetail `json:"product_details"`
}

// SalesSummaryFilter narrows the sales summary; all fields optional and
// always bound as query parameters.
type SalesSummaryFilter struct {
	ProductCode *string `form:"product_code"`
	StartDate   *string `form:"start_date"`
	EndDate     *string `form:"end_date"`
}
