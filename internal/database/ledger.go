package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// RevenueRow is one line of the archived-revenue summary
type RevenueRow struct {
	UserID     string  `json:"user_id"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// RevenueByUser aggregates archived revenue per customer, largest
// spenders first. Read-only raw SQL over the same sqlite file; the
// gorm models own the schema.
func RevenueByUser(path string, limit int) ([]RevenueRow, error) {
	if limit <= 0 {
		limit = 20
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
        SELECT
            user_id,
            COUNT(*) as order_count,
            COALESCE(SUM(total_price), 0) as revenue
        FROM archived_orders
        GROUP BY user_id
        ORDER BY revenue DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer rows.Close()

	var summary []RevenueRow
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.UserID, &row.OrderCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}
