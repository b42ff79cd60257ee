// Package pdflayout детерминированно превращает счет в PDF документ
// фиксированной ширины и переменной высоты: декоративные волны, шапка
// с номером счета и датой, блок клиента, таблица строк и итоговая сумма.
//
// Геометрия и цвета фиксированы; высота страницы растет линейно
// с количеством строк, но не опускается ниже минимума, поэтому короткие
// счета выглядят как полный шаблон, а длинные не обрезаются.
package pdflayout

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// Геометрия страницы в пунктах.
const (
	// RowHeight — высота одной строки таблицы.
	RowHeight = 30.0
	// HeaderHeight — шапка: волны, название компании, блок клиента, заголовок таблицы.
	HeaderHeight = 370.0
	// FooterHeight — место под итоговую сумму и нижнюю волну.
	FooterHeight = 80.0
	// MinHeight — минимальная высота страницы.
	MinHeight = 600.0
	// PageWidth — фиксированная ширина страницы (ширина A4).
	PageWidth = 595.0
)

var (
	tealColor = [3]int{30, 150, 155}
	darkGrey  = [3]int{80, 80, 80}
	lightGrey = [3]int{240, 240, 240}
)

// PageHeight возвращает высоту страницы для счета из itemCount строк.
func PageHeight(itemCount int) float64 {
	contentHeight := float64(itemCount) * RowHeight
	pageHeight := HeaderHeight + contentHeight + FooterHeight
	if pageHeight < MinHeight {
		return MinHeight
	}
	return pageHeight
}

// Params содержит данные для генерации документа.
type Params struct {
	InvoiceNo    string            // Номер счета
	CustomerName string            // Имя клиента
	CompanyName  string            // Название компании в шапке
	Items        []models.LineItem // Строки счета в порядке ввода
	Date         time.Time         // Дата, печатаемая в инфо-баре
}

// Render строит PDF документ счета. Входные данные не валидируются:
// счет без строк дает документ минимальной высоты с пустой таблицей.
func Render(p Params) (*gofpdf.Fpdf, error) {
	const op = "pdflayout.Render"

	pageHeight := PageHeight(len(p.Items))
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: pageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	drawTopWave(doc)
	drawCompanyName(doc, p.CompanyName)
	drawInvoiceInfoBar(doc, p.InvoiceNo, p.Date)
	drawCustomerBlock(doc, p.CustomerName)
	drawTableHeader(doc)
	y := drawTableRows(doc, p.Items)
	drawGrandTotal(doc, y, models.GrandTotal(p.Items))
	drawBottomWave(doc, pageHeight)

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// RenderBytes строит документ и возвращает его содержимое.
func RenderBytes(p Params) ([]byte, error) {
	const op = "pdflayout.RenderBytes"
	doc, err := Render(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func drawTopWave(doc *gofpdf.Fpdf) {
	doc.SetFillColor(darkGrey[0], darkGrey[1], darkGrey[2])
	doc.Ellipse(0, 0, 250, 60, 0, "F")
	doc.SetFillColor(tealColor[0], tealColor[1], tealColor[2])
	doc.Ellipse(0, 0, 200, 50, 0, "F")
}

func drawCompanyName(doc *gofpdf.Fpdf, companyName string) {
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(0, 0, 0)
	textCentered(doc, PageWidth/2, 120, companyName)
}

func drawInvoiceInfoBar(doc *gofpdf.Fpdf, invoiceNo string, date time.Time) {
	doc.SetFillColor(lightGrey[0], lightGrey[1], lightGrey[2])
	doc.Rect(0, 160, PageWidth, 40, "F")

	doc.SetFontSize(12)
	doc.Text(50, 185, fmt.Sprintf("INVOICE NO: %s", invoiceNo))
	textRight(doc, PageWidth-50, 185, fmt.Sprintf("DATE: %s", date.Format("02/01/2006")))
}

func drawCustomerBlock(doc *gofpdf.Fpdf, customerName string) {
	doc.SetTextColor(tealColor[0], tealColor[1], tealColor[2])
	doc.SetFont("Helvetica", "B", 12)
	textCentered(doc, PageWidth/2, 230, "Customer Name:")

	doc.SetTextColor(0, 0, 0)
	doc.SetFontSize(14)
	textCentered(doc, PageWidth/2, 250, strings.ToUpper(customerName))

	doc.SetFont("Helvetica", "", 11)
	textCentered(doc, PageWidth/2, 265, "+92-300-0000000")
	textCentered(doc, PageWidth/2, 280, "123 Anywhere St., Karachi, PK")
}

const tableHeaderY = 320.0

func drawTableHeader(doc *gofpdf.Fpdf) {
	doc.SetFillColor(tealColor[0], tealColor[1], tealColor[2])
	doc.RoundedRect(40, tableHeaderY, PageWidth-80, 35, 10, "1234", "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(60, tableHeaderY+22, "ITEM")
	doc.Text(140, tableHeaderY+22, "DESCRIPTION")
	doc.Text(360, tableHeaderY+22, "PRICE")
	doc.Text(450, tableHeaderY+22, "QTY")
	textRight(doc, 530, tableHeaderY+22, "TOTAL")
}

// drawTableRows рисует по строке на каждый непустой товар и возвращает
// координату y после последней строки. Номер строки берется из позиции
// в полном списке, включая пропущенные пустые строки.
func drawTableRows(doc *gofpdf.Fpdf, items []models.LineItem) float64 {
	y := tableHeaderY + 50
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 12)

	for index, item := range items {
		if item.Product == "" {
			continue
		}

		doc.SetFont("Helvetica", "B", 12)
		doc.Text(60, y, fmt.Sprintf("%02d", index+1))

		doc.SetFont("Helvetica", "", 12)
		doc.Text(140, y, item.Product)
		doc.Text(360, y, fmt.Sprintf("%.0f", item.Price))
		doc.Text(450, y, fmt.Sprintf("%d", item.Quantity))
		textRight(doc, 530, y, fmt.Sprintf("%.0f", item.RowTotal()))

		doc.SetDrawColor(200, 200, 200)
		doc.Line(40, y+10, PageWidth-40, y+10)

		y += RowHeight
	}
	return y
}

func drawGrandTotal(doc *gofpdf.Fpdf, y, grandTotal float64) {
	y += 25
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(tealColor[0], tealColor[1], tealColor[2])
	doc.Text(400, y, "TOTAL AMOUNT:")

	doc.SetTextColor(0, 0, 0)
	textRight(doc, PageWidth-50, y, fmt.Sprintf("%.0f", grandTotal))
}

func drawBottomWave(doc *gofpdf.Fpdf, pageHeight float64) {
	doc.SetFillColor(darkGrey[0], darkGrey[1], darkGrey[2])
	doc.Ellipse(PageWidth, pageHeight, 250, 100, 0, "F")
	doc.SetFillColor(tealColor[0], tealColor[1], tealColor[2])
	doc.Ellipse(PageWidth, pageHeight, 200, 80, 0, "F")
}

func textCentered(doc *gofpdf.Fpdf, x, y float64, s string) {
	doc.Text(x-doc.GetStringWidth(s)/2, y, s)
}

func textRight(doc *gofpdf.Fpdf, x, y float64, s string) {
	doc.Text(x-doc.GetStringWidth(s), y, s)
}

