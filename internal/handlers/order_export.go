package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"storefront/internal/models"
)

const (
	exportSheet       = "Orders"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportDateLayout  = "2006-01-02 15:04"
	exportFilePattern = "orders-%s.xlsx"
)

var exportHeaders = []string{
	"Order Number", "Product", "Price", "Sale Price", "Amount Due",
	"Customer", "Email", "Phone", "Payment Method", "Payment Status", "Created At",
}

// ExportOrders streams every order as an xlsx workbook, newest first.
func ExportOrders(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders/export"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		all, err := svc.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Failed to fetch orders", err)
			return
		}

		f, err := buildOrdersWorkbook(all)
		if err != nil {
			respondInternalError(c, route, "Failed to build export", err)
			return
		}
		defer f.Close()

		// The workbook is rendered in full before any header goes out, so a
		// failure here can still be reported as JSON.
		buf, err := f.WriteToBuffer()
		if err != nil {
			respondInternalError(c, route, "Failed to write export", err)
			return
		}

		filename := fmt.Sprintf(exportFilePattern, time.Now().UTC().Format("20060102"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Length", strconv.Itoa(buf.Len()))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}

func buildOrdersWorkbook(all []models.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		f.Close()
		return nil, err
	}

	for i, order := range all {
		var sale interface{}
		if order.ProductSalePrice != nil {
			sale = *order.ProductSalePrice
		}
		row := []interface{}{
			order.OrderNumber,
			order.ProductTitle,
			order.ProductPrice,
			sale,
			order.AmountDue(),
			order.UserName,
			order.UserEmail,
			order.PhoneNumber,
			string(order.PaymentMethod),
			string(order.PaymentStatus),
			order.CreatedAt.UTC().Format(exportDateLayout),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
