package identity

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	jwtlib "github.com/mkotelnikovv/invoice-maker/internal/lib/jwt"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/password"
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

func newTestService(store docstore.Store) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tokens := jwtlib.NewJWTMaker("test-secret", time.Hour)
	return New(store, tokens, logger, 14)
}

func TestService_Register(t *testing.T) {
	t.Run("успешная регистрация", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", mock.Anything, "emails/ali@example.com").
			Return(nil, docstore.ErrNotFound)
		store.On("Set", mock.Anything, mock.MatchedBy(func(path string) bool {
			return len(path) > len("users/") && path[:6] == "users/"
		}), mock.MatchedBy(func(fields docstore.Fields) bool {
			return fields["name"] == "Ali Traders" &&
				fields["email"] == "ali@example.com" &&
				fields["subscriptionEndsAt"] == nil
		})).Return(nil)
		store.On("Set", mock.Anything, "emails/ali@example.com", mock.MatchedBy(func(fields docstore.Fields) bool {
			uid, ok := fields["uid"].(string)
			return ok && uid != ""
		})).Return(nil)

		service := newTestService(store)
		uid, err := service.Register(context.Background(), models.DummyRegister{
			Name:     "Ali Traders",
			Email:    "Ali@Example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, uid)
		store.AssertExpectations(t)
	})

	t.Run("почта уже занята", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", mock.Anything, "emails/taken@example.com").
			Return(&docstore.Document{ID: "taken@example.com", Fields: docstore.Fields{"uid": "uid-1"}}, nil)

		service := newTestService(store)
		_, err := service.Register(context.Background(), models.DummyRegister{
			Name:     "Someone",
			Email:    "taken@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	trialEnd := time.Now().AddDate(0, 0, 14).UTC().Format(time.RFC3339)
	profileFields := docstore.Fields{
		"name":         "Ali Traders",
		"email":        "ali@example.com",
		"passwordHash": hash,
		"trialEndsAt":  trialEnd,
	}

	tests := []struct {
		name      string
		req       models.DummyLogin
		setupMock func(*MockStore)
		wantErr   error
	}{
		{
			name: "успешный вход",
			req:  models.DummyLogin{Email: "ali@example.com", Password: "secret123"},
			setupMock: func(store *MockStore) {
				store.On("Get", mock.Anything, "emails/ali@example.com").
					Return(&docstore.Document{ID: "ali@example.com", Fields: docstore.Fields{"uid": "uid-1"}}, nil)
				store.On("Get", mock.Anything, "users/uid-1").
					Return(&docstore.Document{ID: "uid-1", Fields: profileFields}, nil)
			},
		},
		{
			name: "неизвестная почта",
			req:  models.DummyLogin{Email: "nobody@example.com", Password: "secret123"},
			setupMock: func(store *MockStore) {
				store.On("Get", mock.Anything, "emails/nobody@example.com").
					Return(nil, docstore.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "неверный пароль",
			req:  models.DummyLogin{Email: "ali@example.com", Password: "wrongpass"},
			setupMock: func(store *MockStore) {
				store.On("Get", mock.Anything, "emails/ali@example.com").
					Return(&docstore.Document{ID: "ali@example.com", Fields: docstore.Fields{"uid": "uid-1"}}, nil)
				store.On("Get", mock.Anything, "users/uid-1").
					Return(&docstore.Document{ID: "uid-1", Fields: profileFields}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.setupMock(store)

			service := newTestService(store)
			token, err := service.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := service.Tokens().ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "ali@example.com", claims.Email)
			assert.Equal(t, "uid-1", claims.UserUID)
		})
	}
}

func TestService_Profile(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "users/uid-1").
		Return(&docstore.Document{ID: "uid-1", Fields: docstore.Fields{
			"name":         "Ali Traders",
			"email":        "ali@example.com",
			"passwordHash": "$2a$10$hash",
		}}, nil)

	service := newTestService(store)
	user, err := service.Profile(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "Ali Traders", user.Name)
	assert.Equal(t, "ali@example.com", user.Email)
	assert.Nil(t, user.TrialEndsAt)
}
