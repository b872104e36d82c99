package database

import (
	"path/filepath"
	"testing"
	"time"

	"evaluo/server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terminalOrder(id, userID string, total float64) models.Order {
	return models.Order{
		ID:     id,
		UserID: userID,
		Properties: []models.Property{{
			Address: "1 Main St",
			City:    "toronto",
			Zone:    models.ZoneA,
		}},
		TotalPrice:  total,
		Status:      models.StatusReportReady,
		CurrentStep: models.StepReportReady,
		Evaluator:   &models.Evaluator{ID: "ev-001", Name: "Maya Thompson"},
		CreatedAt:   time.Now(),
	}
}

func TestArchive_ArchiveAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := NewArchive(path, logrus.New())
	require.NoError(t, err)

	err = archive.ArchiveOrder(terminalOrder("order-1", "user-1", 43), nil)
	require.NoError(t, err)

	orders, err := archive.ListOrders(10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)
	assert.Equal(t, "Maya Thompson", orders[0].EvaluatorName)
	assert.Equal(t, 1, orders[0].PropertyCount)
	assert.Equal(t, 43.0, orders[0].TotalPrice)
}

func TestArchive_ReArchiveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := NewArchive(path, logrus.New())
	require.NoError(t, err)

	order := terminalOrder("order-1", "user-1", 43)
	require.NoError(t, archive.ArchiveOrder(order, nil))

	report := &models.Report{
		ID:        "report-1",
		OrderID:   "order-1",
		Comments:  "Sound structure.",
		CreatedAt: time.Now(),
	}
	require.NoError(t, archive.ArchiveOrder(order, report))

	orders, err := archive.ListOrders(10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	fetched, err := archive.GetReport("order-1")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Sound structure.", fetched.Comments)
}

func TestArchive_GetReportMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := NewArchive(path, logrus.New())
	require.NoError(t, err)

	report, err := archive.GetReport("no-such-order")
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestRevenueByUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := NewArchive(path, logrus.New())
	require.NoError(t, err)

	require.NoError(t, archive.ArchiveOrder(terminalOrder("order-1", "user-1", 43), nil))
	require.NoError(t, archive.ArchiveOrder(terminalOrder("order-2", "user-1", 30), nil))
	require.NoError(t, archive.ArchiveOrder(terminalOrder("order-3", "user-2", 135), nil))

	summary, err := RevenueByUser(path, 10)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, "user-2", summary[0].UserID)
	assert.Equal(t, 135.0, summary[0].Revenue)
	assert.Equal(t, "user-1", summary[1].UserID)
	assert.Equal(t, 2, summary[1].OrderCount)
	assert.Equal(t, 73.0, summary[1].Revenue)
}
