package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/storage"
)

func TestWritePlanCSV(t *testing.T) {
	items := []domain.ReplenishmentItem{
		{
			MaterialCode:         "PLY-18",
			MaterialName:         "Plywood 18mm",
			Unit:                 "sheet",
			Category:             "raw",
			CurrentStock:         120,
			AvgDailyConsumption:  3.5,
			SafetyStock:          49,
			ReorderPoint:         74,
			MaxLevel:             105,
			StockStatus:          domain.StatusInStock,
			DaysUntilStockout:    34,
			Priority:             domain.PriorityNormal,
			UnitCost:             decimal.NewFromInt(450),
			StockValue:           decimal.NewFromInt(54000),
			RecommendedOrderDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			MaterialCode:      "VARNISH",
			DaysUntilStockout: 999,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlanCSV(&buf, items))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, planHeader, records[0])
	assert.Equal(t, "PLY-18", records[1][0])
	assert.Equal(t, "120", records[1][4])
	assert.Equal(t, "3.5", records[1][5])
	assert.Equal(t, "2026-09-10", records[1][13])

	assert.Equal(t, "999", records[2][10], "sentinel passes through untouched")
	assert.Empty(t, records[2][13], "no order date when none recommended")
}

func TestWritePlanCSV_EmptyPlanStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlanCSV(&buf, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var infos []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return infos, nil
}

func (m *memoryStore) DownloadObject(ctx context.Context, key, destPath string) error {
	return nil
}

func (m *memoryStore) UploadObject(ctx context.Context, key string, data []byte) error {
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return nil
}

func TestArchiver(t *testing.T) {
	store := &memoryStore{}
	a := NewArchiver(store, "replenishment")
	a.now = func() time.Time { return time.Date(2026, 8, 29, 13, 45, 7, 0, time.UTC) }

	key, err := a.Archive(context.Background(), []domain.ReplenishmentItem{{MaterialCode: "PLY-18"}})
	require.NoError(t, err)

	assert.Equal(t, "replenishment/2026/08/29/plan-134507.csv", key)
	assert.Contains(t, string(store.objects[key]), "PLY-18")
}
