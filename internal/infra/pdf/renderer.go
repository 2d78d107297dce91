// Package pdf renders printable invoice documents. Labels are in Bulgarian,
// so the renderer requires a Unicode TTF font on disk; the built-in core
// fonts only cover Latin-1.
package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"trading/config"
	"trading/internal/domain/entity"
	"trading/internal/domain/service"
)

const (
	fontFamily = "DejaVu"

	issuedOnLayout = "02.01.2006 15:04"
)

// renderer implements service.InvoicePDFRenderer with go-pdf/fpdf.
type renderer struct {
	fontPath string
}

// NewRenderer is the constructor for renderer. The font file is validated up
// front so a misconfigured deployment fails at startup, not on first export.
func NewRenderer(cfg *config.Config) (service.InvoicePDFRenderer, error) {
	fontPath := ""
	if cfg.PDF != nil {
		fontPath = cfg.PDF.FontPath
	}
	if fontPath == "" {
		return nil, errors.New("pdf font path must be configured")
	}
	if _, err := os.Stat(fontPath); err != nil {
		return nil, errors.Wrap(err, "pdf font file is not readable")
	}

	return &renderer{fontPath: fontPath}, nil
}

// Render returns a single-page A4 PDF summarizing the invoice.
func (r *renderer) Render(invoice *entity.Invoice) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddUTF8Font(fontFamily, "", r.fontPath)
	doc.AddPage()

	doc.SetFont(fontFamily, "", 18)
	doc.Cell(0, 12, titleLine(invoice))
	doc.Ln(16)

	doc.SetFont(fontFamily, "", 12)
	for _, line := range detailLines(invoice) {
		doc.Cell(0, 8, line)
		doc.Ln(9)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render invoice pdf")
	}

	return buf.Bytes(), nil
}

// titleLine builds the document heading.
func titleLine(invoice *entity.Invoice) string {
	return fmt.Sprintf("Фактура № %s", invoice.ID)
}

// detailLines builds the body of the document, one label per line.
func detailLines(invoice *entity.Invoice) []string {
	return []string{
		fmt.Sprintf("Поръчка: %s", invoice.OrderID),
		fmt.Sprintf("Клиент: %s", invoice.CustomerName),
		fmt.Sprintf("ЕИК: %s", invoice.EIK),
		fmt.Sprintf("Дата на издаване: %s", invoice.IssuedOn.Format(issuedOnLayout)),
		fmt.Sprintf("Обща сума: %s лв.", invoice.TotalAmount.StringFixed(2)),
	}
}
