package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event is a single tracked storefront occurrence, e.g. "order_created".
type Event struct {
	ID        int64
	Type      string
	Metadata  *string
	UserAgent *string
	IPAddress *string
	CreatedAt time.Time
}

// StatusCount is the number of orders currently in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DailyStat aggregates one day of non-cancelled orders.
type DailyStat struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Summary is the admin dashboard aggregate. Revenue figures exclude
// cancelled orders.
type Summary struct {
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalUsers     int64           `json:"totalUsers"`
	TotalProducts  int64           `json:"totalProducts"`
	OrdersByStatus []StatusCount   `json:"ordersByStatus"`
	DailyStats     []DailyStat     `json:"dailyStats"`
}

// Repository records events and computes the dashboard summary.
type Repository interface {
	RecordEvent(ctx context.Context, e *Event) error
	Summary(ctx context.Context) (*Summary, error)
}
