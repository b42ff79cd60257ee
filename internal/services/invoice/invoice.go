// Package invoice содержит бизнес-логику работы со счетами: создание,
// списки, сводка для панели управления и кеширование сводки.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	"github.com/mkotelnikovv/invoice-maker/internal/metrics"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// ErrEmptyInvoice возвращается, когда счет не содержит клиента или
// итоговая сумма равна нулю.
var ErrEmptyInvoice = errors.New("invoice needs a customer and items")

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы со счетами поверх
// документного хранилища, включая кеширование сводки.
type Service struct {
	store docstore.Store
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store docstore.Store, cache Cache, log *slog.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		log:   log,
	}
}

// GenerateInvoiceNo возвращает номер счета вида INV-XXXX со случайным
// четырехзначным числом. Уникальность не проверяется, коллизии возможны.
func GenerateInvoiceNo() string {
	return fmt.Sprintf("INV-%d", 1000+rand.Intn(9000))
}

// Create сохраняет новый счет пользователя и возвращает идентификатор
// документа и номер счета. Счет создается ровно один раз и далее
// не обновляется. Итог считается по всем строкам, включая строки
// с пустым названием товара.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyInvoice) (string, string, error) {
	const op = "services.invoice.Create"

	items := make([]models.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.LineItem{
			Product:  item.Product,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	total := models.GrandTotal(items)
	if req.CustomerName == "" || total == 0 {
		return "", "", fmt.Errorf("%s: %w", op, ErrEmptyInvoice)
	}

	invoiceNo := req.InvoiceNo
	if invoiceNo == "" {
		invoiceNo = GenerateInvoiceNo()
	}

	encodedItems := make([]any, 0, len(items))
	for _, item := range items {
		encodedItems = append(encodedItems, map[string]any{
			"product":  item.Product,
			"quantity": item.Quantity,
			"price":    item.Price,
		})
	}

	fields := docstore.Fields{
		"invoiceNo":    invoiceNo,
		"customerName": req.CustomerName,
		"items":        encodedItems,
		"total":        total,
		"paid":         false,
		"createdAt":    docstore.ServerTimestamp,
	}

	id, err := s.store.Add(ctx, invoicesCollection(userUID), fields)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	metrics.InvoicesCreated.Inc()

	cacheKey := summaryCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate summary cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.log.Info("created new invoice", slog.String("id", id), slog.String("invoice_no", invoiceNo))
	return id, invoiceNo, nil
}

// List возвращает счета пользователя, новые первыми. Суммы и порядок строк
// отдаются как сохранены, без пересчета.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Invoice, error) {
	const op = "services.invoice.List"

	docs, err := s.store.List(ctx, invoicesCollection(userUID), docstore.OrderCreatedAtDesc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Invoice, 0, len(docs))
	for _, doc := range docs {
		inv, err := models.DecodeInvoice(doc.ID, doc.Fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if inv.CreatedAt.IsZero() {
			inv.CreatedAt = doc.CreatedAt
		}
		result = append(result, inv)
	}
	return result, nil
}

// Read возвращает счет пользователя по идентификатору документа.
func (s *Service) Read(ctx context.Context, userUID, id string) (*models.Invoice, error) {
	const op = "services.invoice.Read"

	doc, err := s.store.Get(ctx, invoicesCollection(userUID)+"/"+id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	inv, err := models.DecodeInvoice(doc.ID, doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = doc.CreatedAt
	}
	return inv, nil
}

// Summary возвращает счетчики счетов для панели управления,
// используя кеш или хранилище.
func (s *Service) Summary(ctx context.Context, userUID string) (*models.Summary, error) {
	const op = "services.invoice.Summary"

	var cached models.Summary
	cacheKey := summaryCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read summary cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	invoices, err := s.List(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &models.Summary{Total: len(invoices)}
	for _, inv := range invoices {
		if inv.Paid {
			summary.Paid++
		} else {
			summary.Unpaid++
		}
	}

	if err := s.cache.Set(cacheKey, summary, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return summary, nil
}

func invoicesCollection(userUID string) string {
	return "users/" + userUID + "/invoices"
}

func summaryCacheKey(userUID string) string {
	return fmt.Sprintf("summary:%s", userUID)
}
