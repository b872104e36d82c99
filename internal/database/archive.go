package database

import (
	"fmt"
	"time"

	"evaluo/server/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ArchivedOrder is the persisted snapshot of an order that reached
// Report Ready. The live store stays authoritative; the archive is an
// append-only record for the admin view.
type ArchivedOrder struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index"`
	EvaluatorID   string
	EvaluatorName string
	PropertyCount int
	TotalPrice    float64
	Discount      float64
	SurgeFee      float64
	Status        string
	CreatedAt     time.Time
	ArchivedAt    time.Time
}

// ArchivedReport is the persisted report attached to an archived order
type ArchivedReport struct {
	ID        string `gorm:"primaryKey"`
	OrderID   string `gorm:"index"`
	Comments  string
	ImageURL  string
	VideoURL  string
	CreatedAt time.Time
}

// Archive is the sqlite-backed terminal-order store
type Archive struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewArchive opens the sqlite database and runs migrations
func NewArchive(path string, logger *logrus.Logger) (*Archive, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if err := db.AutoMigrate(&ArchivedOrder{}, &ArchivedReport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}

	return &Archive{db: db, logger: logger}, nil
}

// ArchiveOrder persists a terminal order and, when present, its report.
// Re-archiving the same order overwrites the previous snapshot.
func (a *Archive) ArchiveOrder(order models.Order, report *models.Report) error {
	archived := ArchivedOrder{
		ID:            order.ID,
		UserID:        order.UserID,
		PropertyCount: len(order.Properties),
		TotalPrice:    order.TotalPrice,
		Discount:      order.Discount,
		SurgeFee:      order.SurgeFee,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		ArchivedAt:    time.Now(),
	}
	if order.Evaluator != nil {
		archived.EvaluatorID = order.Evaluator.ID
		archived.EvaluatorName = order.Evaluator.Name
	}

	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&archived).Error; err != nil {
			return fmt.Errorf("failed to save archived order: %w", err)
		}
		if report != nil {
			archivedReport := ArchivedReport{
				ID:        report.ID,
				OrderID:   report.OrderID,
				Comments:  report.Comments,
				ImageURL:  report.ImageURL,
				VideoURL:  report.VideoURL,
				CreatedAt: report.CreatedAt,
			}
			if err := tx.Save(&archivedReport).Error; err != nil {
				return fmt.Errorf("failed to save archived report: %w", err)
			}
		}
		return nil
	})
}

// ListOrders returns archived orders, most recently archived first
func (a *Archive) ListOrders(limit int) ([]ArchivedOrder, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []ArchivedOrder
	err := a.db.Order("archived_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

// GetReport returns the archived report for an order, or nil
func (a *Archive) GetReport(orderID string) (*ArchivedReport, error) {
	var report ArchivedReport
	err := a.db.Where("order_id = ?", orderID).First(&report).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
