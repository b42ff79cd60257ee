package trialscheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
)

// MockStore реализует интерфейс Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context, collection string, order docstore.Order) ([]*docstore.Document, error) {
	args := m.Called(ctx, collection, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*docstore.Document), args.Error(1)
}

func userDoc(uid string, fields docstore.Fields) *docstore.Document {
	base := docstore.Fields{
		"email":        uid + "@example.com",
		"passwordHash": "$2a$10$hash",
		"name":         "User " + uid,
	}
	for k, v := range fields {
		base[k] = v
	}
	return &docstore.Document{ID: uid, Path: "users/" + uid, Fields: base}
}

func TestCollectExpiringTrials(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)
	future := now.AddDate(0, 1, 0)

	store := new(MockStore)
	store.On("List", mock.Anything, "users", docstore.OrderNone).
		Return([]*docstore.Document{
			// пробный период заканчивается сегодня, подписки нет
			userDoc("expiring", docstore.Fields{"trialEndsAt": today.Format(time.RFC3339)}),
			// пробный период заканчивается завтра
			userDoc("later", docstore.Fields{"trialEndsAt": tomorrow.Format(time.RFC3339)}),
			// пробный период сегодня, но подписка активна
			userDoc("subscribed", docstore.Fields{
				"trialEndsAt":        today.Format(time.RFC3339),
				"subscriptionEndsAt": future.Format(time.RFC3339),
			}),
			// дата пробного периода не назначена
			userDoc("notrial", nil),
			// битый документ пропускается без ошибки
			{ID: "broken", Path: "users/broken", Fields: docstore.Fields{"name": "x"}},
		}, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	service := NewSchedulerService(store, logger)
	service.now = func() time.Time { return now }

	notices, err := service.CollectExpiringTrials(context.Background())

	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "expiring", notices[0].UserUID)
	assert.Equal(t, "expiring@example.com", notices[0].Email)
	store.AssertExpectations(t)
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "одинаковый день в разное время",
			a:    time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC),
			b:    time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "соседние дни",
			a:    time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2026, 3, 16, 0, 1, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "разные зоны, один день в UTC",
			a:    time.Date(2026, 3, 15, 1, 0, 0, 0, time.FixedZone("plus3", 3*3600)),
			b:    time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameDay(tt.a, tt.b))
		})
	}
}
