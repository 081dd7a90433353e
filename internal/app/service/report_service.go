package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	ExportOrder(orderID uint) ([]byte, string, error)
}

type reportService struct {
	orderService OrderService
}

func NewReportService(orderService OrderService) ReportService {
	return &reportService{orderService: orderService}
}

// ExportOrder renders one order as an XLSX worksheet for the production
// floor: one row per line with its roll figures, followed by the totals
// breakdown. Returns the file bytes and a suggested filename.
func (s *reportService) ExportOrder(orderID uint) ([]byte, string, error) {
	order, err := s.orderService.GetOrder(orderID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Order"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{
		"#", "Description", "Qty", "Unit", "Unit Price", "Line Total",
		"Roll", "Cut W (in)", "Cut H (in)", "Fixed Area (ft2)", "Offcut Area (ft2)", "Offcut W (in)",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	for i, item := range order.OrderItems {
		values := []interface{}{
			i + 1, item.Description, item.Quantity, item.Unit, item.UnitPrice, item.LineTotal,
		}
		if item.IsRoll {
			rollName := ""
			if item.Roll != nil {
				rollName = item.Roll.RollType
			}
			values = append(values,
				rollName, item.CutWidthIn, item.CutHeightIn,
				item.FixedAreaFt2, item.OffcutAreaFt2, item.OffcutWidthIn,
			)
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	totals := [][2]interface{}{
		{"Subtotal", order.Subtotal},
		{"Discount", order.DiscountAmount},
		{"Tax", order.TaxAmount},
		{"Shipping", order.ShippingAmount},
		{"Grand Total", order.GrandTotal},
	}
	for _, line := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(5, row)
		valueCell, _ := excelize.CoordinatesToCellName(6, row)
		f.SetCellValue(sheet, labelCell, line[0])
		f.SetCellValue(sheet, valueCell, line[1])
		row++
	}

	if order.IsItemsLocked && order.LockedAt != nil {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, fmt.Sprintf("Items locked at %s", order.LockedAt.Format(time.RFC3339)))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to render order export", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, "", err
	}

	filename := fmt.Sprintf("%s.xlsx", order.OrderNumber)
	logger.Info("Order exported", map[string]interface{}{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
		"bytes":        buf.Len(),
	})
	return buf.Bytes(), filename, nil
}
