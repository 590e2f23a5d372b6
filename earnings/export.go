package earnings

import (
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/junaidrashid-git/marketplace-client/models"
	"github.com/junaidrashid-git/marketplace-client/money"
)

// WriteReport exports the seller's delivered-order breakdown plus the
// summary row as an xlsx workbook.
func WriteReport(w io.Writer, orders []models.Order, sellerID uint, now time.Time) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Earnings")
	if err != nil {
		return err
	}

	headers := []string{"OrderID", "Status", "CreatedAt", "SellerSubtotal", "Earning", "Commission"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, order := range orders {
		if order.Status != models.OrderStatusDelivered {
			continue
		}
		subtotal := SellerSubtotal(order, sellerID)
		if subtotal == 0 {
			continue
		}
		earning := subtotal * (100 - CommissionPercent) / 100

		row := sheet.AddRow()
		row.AddCell().SetValue(int(order.ID))
		row.AddCell().SetValue(string(order.Status))
		row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(money.FormatPrice(subtotal))
		row.AddCell().SetValue(money.FormatPrice(earning))
		row.AddCell().SetValue(money.FormatPrice(subtotal - earning))
	}

	s := Calculate(orders, sellerID, now)
	sheet.AddRow() // spacer
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetValue("Total")
	totalRow.AddCell().SetValue("")
	totalRow.AddCell().SetValue("")
	totalRow.AddCell().SetValue("")
	totalRow.AddCell().SetValue(money.FormatPrice(s.TotalEarned))
	totalRow.AddCell().SetValue(money.FormatPrice(s.TotalCommission))

	return file.Write(w)
}
