package orders

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bleep333/fake-shop-sub001/internal/models"

	"github.com/phpdave11/gofpdf"
)

// BuildInvoicePDF renders a one-page invoice for an order.
func BuildInvoicePDF(order models.Order, user models.User) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+order.Reference)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Order date : "+order.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", user.Name))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", user.Email))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, item := range order.Items {
		name := fmt.Sprintf("product #%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		line := fmt.Sprintf("%d) %s (size %s) x%d @ %.2f = %.2f",
			i+1, name, item.Size, item.Quantity,
			item.UnitPrice, item.UnitPrice*float64(item.Quantity))
		pdf.MultiCell(0, 6, line, "", "", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This invoice was generated automatically.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", order.Reference)
	return buf.Bytes(), filename, nil
}
