package invoice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// MockStore реализует интерфейс docstore.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, path string) (*docstore.Document, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docstore.Document), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, path string, fields docstore.Fields) error {
	args := m.Called(ctx, path, fields)
	return args.Error(0)
}

func (m *MockStore) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, collection string, order docstore.Order) ([]*docstore.Document, error) {
	args := m.Called(ctx, collection, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*docstore.Document), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGenerateInvoiceNo(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{4}$`)
	for range 100 {
		no := GenerateInvoiceNo()
		assert.Regexp(t, pattern, no)
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DummyInvoice
		setupMock func(*MockStore, *MockCache)
		wantErr   error
	}{
		{
			name: "успешное создание счета",
			req: models.DummyInvoice{
				CustomerName: "John Doe",
				Items: []models.DummyLineItem{
					{Product: "Widget", Quantity: 2, Price: 25},
				},
			},
			setupMock: func(store *MockStore, cache *MockCache) {
				store.On("Add", mock.Anything, "users/user123/invoices", mock.MatchedBy(func(fields docstore.Fields) bool {
					return fields["customerName"] == "John Doe" &&
						fields["total"] == 50.0 &&
						fields["paid"] == false
				})).Return("doc-1", nil)
				cache.On("Invalidate", "summary:user123").Return(nil)
			},
		},
		{
			name: "строка с пустым товаром входит в итог",
			req: models.DummyInvoice{
				CustomerName: "Jane Doe",
				Items: []models.DummyLineItem{
					{Product: "Widget", Quantity: 2, Price: 25},
					{Product: "", Quantity: 1, Price: 50},
				},
			},
			setupMock: func(store *MockStore, cache *MockCache) {
				store.On("Add", mock.Anything, "users/user123/invoices", mock.MatchedBy(func(fields docstore.Fields) bool {
					return fields["total"] == 100.0
				})).Return("doc-2", nil)
				cache.On("Invalidate", "summary:user123").Return(nil)
			},
		},
		{
			name: "пустое имя клиента",
			req: models.DummyInvoice{
				CustomerName: "",
				Items: []models.DummyLineItem{
					{Product: "Widget", Quantity: 2, Price: 25},
				},
			},
			setupMock: func(_ *MockStore, _ *MockCache) {},
			wantErr:   ErrEmptyInvoice,
		},
		{
			name: "нулевой итог",
			req: models.DummyInvoice{
				CustomerName: "John Doe",
				Items: []models.DummyLineItem{
					{Product: "Widget", Quantity: 0, Price: 25},
				},
			},
			setupMock: func(_ *MockStore, _ *MockCache) {},
			wantErr:   ErrEmptyInvoice,
		},
		{
			name: "ошибка хранилища",
			req: models.DummyInvoice{
				CustomerName: "John Doe",
				Items: []models.DummyLineItem{
					{Product: "Widget", Quantity: 2, Price: 25},
				},
			},
			setupMock: func(store *MockStore, _ *MockCache) {
				store.On("Add", mock.Anything, "users/user123/invoices", mock.Anything).
					Return("", errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			cache := new(MockCache)
			tt.setupMock(store, cache)

			service := New(store, cache, newTestLogger())
			id, invoiceNo, err := service.Create(context.Background(), "user123", tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, id)
			assert.Regexp(t, `^INV-\d{4}$`, invoiceNo)
			store.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_Create_KeepsProvidedInvoiceNo(t *testing.T) {
	store := new(MockStore)
	cache := new(MockCache)
	store.On("Add", mock.Anything, "users/user123/invoices", mock.MatchedBy(func(fields docstore.Fields) bool {
		return fields["invoiceNo"] == "INV-4242"
	})).Return("doc-1", nil)
	cache.On("Invalidate", "summary:user123").Return(nil)

	service := New(store, cache, newTestLogger())
	_, invoiceNo, err := service.Create(context.Background(), "user123", models.DummyInvoice{
		InvoiceNo:    "INV-4242",
		CustomerName: "John Doe",
		Items:        []models.DummyLineItem{{Product: "Widget", Quantity: 1, Price: 10}},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-4242", invoiceNo)
	store.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	store := new(MockStore)
	cache := new(MockCache)
	store.On("List", mock.Anything, "users/user123/invoices", docstore.OrderCreatedAtDesc).
		Return([]*docstore.Document{
			{
				ID:        "doc-1",
				Path:      "users/user123/invoices/doc-1",
				CreatedAt: createdAt,
				Fields: docstore.Fields{
					"invoiceNo":    "INV-1234",
					"customerName": "John Doe",
					"total":        50.0,
					"items": []any{
						map[string]any{"product": "Widget", "quantity": 2.0, "price": 25.0},
					},
				},
			},
		}, nil)

	service := New(store, cache, newTestLogger())
	invoices, err := service.List(context.Background(), "user123")

	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-1234", invoices[0].InvoiceNo)
	assert.Equal(t, createdAt, invoices[0].CreatedAt, "дата берется из колонки документа при отсутствии поля")
	store.AssertExpectations(t)
}

func TestService_Summary(t *testing.T) {
	t.Run("сводка из хранилища с записью в кеш", func(t *testing.T) {
		store := new(MockStore)
		cache := new(MockCache)
		cache.On("Get", "summary:user123", mock.Anything).Return(false, nil)
		store.On("List", mock.Anything, "users/user123/invoices", docstore.OrderCreatedAtDesc).
			Return([]*docstore.Document{
				{ID: "doc-1", Fields: docstore.Fields{
					"invoiceNo": "INV-1", "customerName": "A", "total": 10.0, "paid": true,
					"items": []any{},
				}},
				{ID: "doc-2", Fields: docstore.Fields{
					"invoiceNo": "INV-2", "customerName": "B", "total": 20.0,
					"items": []any{},
				}},
				{ID: "doc-3", Fields: docstore.Fields{
					"invoiceNo": "INV-3", "customerName": "C", "total": 30.0, "paid": false,
					"items": []any{},
				}},
			}, nil)
		cache.On("Set", "summary:user123", mock.Anything, 5*time.Minute).Return(nil)

		service := New(store, cache, newTestLogger())
		summary, err := service.Summary(context.Background(), "user123")

		require.NoError(t, err)
		assert.Equal(t, &models.Summary{Total: 3, Paid: 1, Unpaid: 2}, summary)
		store.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("сводка из кеша без обращения к хранилищу", func(t *testing.T) {
		store := new(MockStore)
		cache := new(MockCache)
		cache.On("Get", "summary:user123", mock.Anything).Run(func(args mock.Arguments) {
			result := args.Get(1).(*models.Summary)
			*result = models.Summary{Total: 5, Paid: 2, Unpaid: 3}
		}).Return(true, nil)

		service := New(store, cache, newTestLogger())
		summary, err := service.Summary(context.Background(), "user123")

		require.NoError(t, err)
		assert.Equal(t, &models.Summary{Total: 5, Paid: 2, Unpaid: 3}, summary)
		store.AssertNotCalled(t, "List")
	})
}
