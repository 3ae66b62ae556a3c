package mailer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/hackwithroshan/autocosmic-shop-sub000/cart"
	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// InvoiceLine is one itemized row of the invoice.
type InvoiceLine struct {
	Name     string
	Quantity int
	Unit     decimal.Decimal
	Subtotal decimal.Decimal
}

// InvoiceData is everything the PDF renders, computed up front so the
// arithmetic is separable from the drawing.
type InvoiceData struct {
	StoreName string
	Currency  string
	OrderRef  string
	Date      string
	Customer  string
	Email     string
	Address   models.Address
	Lines     []InvoiceLine
	Total     decimal.Decimal
}

// BuildInvoiceData itemizes the checkout lines against the order. Subtotals
// are rounded to 2 places; their sum matches Order.Total within 0.01.
func BuildInvoiceData(order *models.Order, lines []cart.Line, storeName, currency string) InvoiceData {
	data := InvoiceData{
		StoreName: storeName,
		Currency:  currency,
		OrderRef:  order.OrderRef,
		Date:      order.CreatedAt.Format("02 Jan 2006"),
		Customer:  order.CustomerName,
		Email:     order.CustomerEmail,
		Address:   order.ShippingAddress,
		Total:     decimal.NewFromFloat(order.Total).Round(2),
	}
	for _, l := range lines {
		unit := decimal.NewFromFloat(l.UnitPrice).Round(2)
		data.Lines = append(data.Lines, InvoiceLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Unit:     unit,
			Subtotal: unit.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2),
		})
	}
	return data
}

// RenderPDF draws the invoice as a single-page A4 document.
func RenderPDF(data InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, data.StoreName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice %s", data.OrderRef))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", data.Date))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Billed to")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, data.Customer)
	pdf.Ln(5)
	pdf.Cell(0, 5, data.Email)
	pdf.Ln(5)
	addr := data.Address
	if addr.Street != "" || addr.City != "" {
		pdf.Cell(0, 5, fmt.Sprintf("%s, %s %s", addr.Street, addr.City, addr.PostalCode))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("%s, %s", addr.State, addr.Country))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range data.Lines {
		pdf.CellFormat(90, 7, l.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, l.Unit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, l.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(145, 8, "Total ("+data.Currency+")", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, data.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice render failed: %w", err)
	}
	return buf.Bytes(), nil
}
