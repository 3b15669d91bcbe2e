package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/utils"
)

// ReportController computes the dashboard aggregates. Money always comes
// from the order-item price snapshots, never from the live menu.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type analyticsSummary struct {
	TotalRevenue     float64 `json:"total_revenue"`
	OrdersCompleted  int     `json:"orders_completed"`
	AverageTableTime float64 `json:"average_table_time"` // minutes
}

// GetAnalyticsSummary reports revenue, completed orders and average table
// time, optionally bounded by ?start=&end= (RFC 3339).
func (rc *ReportController) GetAnalyticsSummary(c *gin.Context) {
	query := rc.DB.Preload("Items").Where("restaurant_id = ?", restaurantID(c))
	if start, err := time.Parse(time.RFC3339, c.Query("start")); err == nil {
		query = query.Where("created_at >= ?", start)
	}
	if end, err := time.Parse(time.RFC3339, c.Query("end")); err == nil {
		query = query.Where("created_at <= ?", end)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	revenue := decimal.Zero
	var summary analyticsSummary
	var totalMinutes float64
	for _, order := range orders {
		for _, item := range order.Items {
			line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
			revenue = revenue.Add(line)
		}
		if order.Status == models.OrderCompleted {
			summary.OrdersCompleted++
			totalMinutes += order.UpdatedAt.Sub(order.CreatedAt).Minutes()
		}
	}
	summary.TotalRevenue, _ = revenue.Float64()
	if summary.OrdersCompleted > 0 {
		summary.AverageTableTime = totalMinutes / float64(summary.OrdersCompleted)
	}

	utils.RespondJSON(c, http.StatusOK, "Analytics summary", summary)
}

// GetPopularItems ranks menu items by ordered quantity and snapshot revenue.
func (rc *ReportController) GetPopularItems(c *gin.Context) {
	var popular []struct {
		MenuItemID uint    `json:"menu_item_id"`
		Name       string  `json:"name"`
		Quantity   int     `json:"quantity"`
		Revenue    float64 `json:"revenue"`
	}

	err := rc.DB.Raw(`
		SELECT oi.menu_item_id, oi.name,
		SUM(oi.quantity) AS quantity, SUM(oi.price * oi.quantity) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = ?
		GROUP BY oi.menu_item_id, oi.name
		ORDER BY quantity DESC
		LIMIT 10
	`, restaurantID(c)).Scan(&popular).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Popular items", popular)
}

type dailySales struct {
	Day   string  `json:"day"`
	Sales float64 `json:"sales"`
}

// GetDailySales sums snapshot revenue per calendar day for the last seven
// days, today included. Buckets are dates, so day seven and today never
// collapse into one weekday entry.
func (rc *ReportController) GetDailySales(c *gin.Context) {
	now := time.Now()
	first := now.AddDate(0, 0, -6)
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())

	var orders []models.Order
	err := rc.DB.Preload("Items").
		Where("restaurant_id = ? AND created_at >= ?", restaurantID(c), start).
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	byDay := make(map[string]decimal.Decimal)
	for _, order := range orders {
		day := order.CreatedAt.Format("2006-01-02")
		total := byDay[day]
		for _, item := range order.Items {
			total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		byDay[day] = total
	}

	sales := make([]dailySales, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		if total, ok := byDay[day]; ok {
			f, _ := total.Float64()
			sales = append(sales, dailySales{Day: day, Sales: f})
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Daily sales", sales)
}
