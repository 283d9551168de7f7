package purchasing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/restock-api/internal/application/ports"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/repository"
)

// PDFUseCase genera la orden de compra imprimible de una factura guardada.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   ports.InvoicePDFGenerator
	issuer      ports.Issuer
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	generator ports.InvoicePDFGenerator,
	issuer ports.Issuer,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		generator:   generator,
		issuer:      issuer,
	}
}

// VendorOrderPDF devuelve (pdfBytes, filename). ErrNotFound si la factura no existe.
func (uc *PDFUseCase) VendorOrderPDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	if invoiceID == "" {
		return nil, "", domain.ErrInvalidInput
	}
	order, err := uc.invoiceRepo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.generator.GenerateVendorOrderPDF(ctx, order, uc.issuer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	vendor := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(order.VendorName)), " ", "_")
	if vendor == "" {
		vendor = order.VendorID
	}
	filename := fmt.Sprintf("orden_compra_%s_%s.pdf", vendor, order.OrderDate.Format("20060102"))
	return pdfBytes, filename, nil
}
