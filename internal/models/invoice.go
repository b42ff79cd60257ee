package models

import "time"

// LineItem представляет одну строку счета: товар, количество и цена за единицу.
//
// Порядок строк в счете задается порядком ввода и является значимым.
type LineItem struct {
	Product  string  `json:"product"`  // Название товара
	Quantity int     `json:"quantity"` // Количество, неотрицательное
	Price    float64 `json:"price"`    // Цена за единицу, неотрицательная
}

// RowTotal возвращает сумму по строке: количество, умноженное на цену.
func (i LineItem) RowTotal() float64 {
	return float64(i.Quantity) * i.Price
}

// Invoice представляет сохраненный счет пользователя.
//
// Счет неизменяем после сохранения: путь редактирования или удаления отсутствует.
// Поле Total хранится как было вычислено при сохранении и не пересчитывается при чтении.
type Invoice struct {
	ID           string     // Идентификатор документа в хранилище
	InvoiceNo    string     // Номер счета вида INV-XXXX
	CustomerName string     // Имя клиента
	Items        []LineItem // Строки счета в порядке ввода
	Total        float64    // Итоговая сумма, вычисленная при сохранении
	Paid         bool       // Флаг оплаты, проставляется внешним процессом
	CreatedAt    time.Time  // Дата создания счета
}

// GrandTotal возвращает итоговую сумму по всем строкам, включая строки
// с пустым названием товара. Строки с пустым товаром не отображаются
// в PDF и в сообщении для отправки, но участвуют в итоге.
func GrandTotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.RowTotal()
	}
	return sum
}

// DummyLineItem используется для приёма строки счета из JSON-запроса.
type DummyLineItem struct {
	Product  string  `json:"product"`                      // Название товара, может быть пустым
	Quantity int     `json:"quantity" validate:"min=0"`    // Количество
	Price    float64 `json:"price" validate:"min=0"`       // Цена за единицу
}

// DummyInvoice используется для приёма данных нового счета из JSON-запроса,
// прежде чем конвертировать их в Invoice.
type DummyInvoice struct {
	InvoiceNo    string          `json:"invoice_no"`                              // Номер счета, генерируется если пуст
	CustomerName string          `json:"customer_name" validate:"required"`       // Имя клиента
	Items        []DummyLineItem `json:"items" validate:"required,min=1,dive"`    // Строки счета
}

// Summary содержит счетчики для панели управления.
type Summary struct {
	Total  int `json:"total"`  // Всего счетов
	Paid   int `json:"paid"`   // Оплаченных счетов
	Unpaid int `json:"unpaid"` // Неоплаченных счетов
}
