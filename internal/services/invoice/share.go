package invoice

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// ShareText формирует текстовое резюме счета для отправки в мессенджер:
// номер, клиент, по строке на каждый непустой товар и итоговая сумма.
// Строки с пустым товаром не попадают в текст, но учтены в сохраненном итоге.
func ShareText(inv *models.Invoice) string {
	var lines []string
	for _, item := range inv.Items {
		if item.Product == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s | %d x %s = %s",
			item.Product,
			item.Quantity,
			formatAmount(item.Price),
			formatAmount(item.RowTotal()),
		))
	}

	return fmt.Sprintf("Invoice %s\nCustomer: %s\n\n%s\n\nTotal: %s",
		inv.InvoiceNo,
		inv.CustomerName,
		strings.Join(lines, "\n"),
		formatAmount(inv.Total),
	)
}

// ShareLink возвращает WhatsApp deep-link с URL-кодированным текстом счета.
func ShareLink(inv *models.Invoice) string {
	return "https://wa.me/?text=" + url.QueryEscape(ShareText(inv))
}

// formatAmount печатает сумму без хвостовых нулей: 50, 49.5, 0.25.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
