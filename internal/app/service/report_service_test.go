package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportService_ExportOrder_RowsAndTotals(t *testing.T) {
	orderService, testDB, customer, staff, product := setupOrderServiceTest(t)
	reportService := NewReportService(orderService)

	order := seedOrder(t, testDB, customer.ID, product.ID, 4, 250)
	_, err := orderService.AddItem(staff.ID, order.ID, OrderItemInput{
		ProductID:   product.ID,
		Description: "Rush reprint",
		Quantity:    2,
	})
	require.NoError(t, err)

	payload, filename, err := reportService.ExportOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber+".xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Order")
	require.NoError(t, err)

	// Header, then one row per order line.
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Description", rows[0][1])
	assert.Equal(t, "Rush reprint", rows[2][1])

	grand, err := f.GetCellValue("Order", "F9")
	require.NoError(t, err)
	assert.Equal(t, "1500", grand)
}

func TestReportService_ExportOrder_NotFound(t *testing.T) {
	orderService, _, _, _, _ := setupOrderServiceTest(t)
	reportService := NewReportService(orderService)

	_, _, err := reportService.ExportOrder(9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestReportService_ExportOrder_LockedFooter(t *testing.T) {
	orderService, testDB, customer, staff, product := setupOrderServiceTest(t)
	reportService := NewReportService(orderService)

	order := seedOrder(t, testDB, customer.ID, product.ID, 1, 100)
	_, err := orderService.Lock(staff.ID, order.ID)
	require.NoError(t, err)

	payload, _, err := reportService.ExportOrder(order.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Order")
	require.NoError(t, err)
	assert.Contains(t, rows[len(rows)-1][0], "Items locked at")
}
