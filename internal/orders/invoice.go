package orders

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

// RenderInvoice produces the invoice PDF for an order. The document is
// built from the order snapshot alone so it stays reproducible after
// the live products change or disappear.
func RenderInvoice(order OrderDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range order.Items {
		line := fmt.Sprintf("%s - %d x $%s", item.Title, item.Quantity, formatDollars(item.PriceCents))
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Price: $%s", formatDollars(order.TotalCents)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Thank you", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice pdf")
	}
	return buf.Bytes(), nil
}

func formatDollars(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
