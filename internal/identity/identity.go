// Package identity реализует регистрацию, вход и чтение профиля пользователя
// поверх документного хранилища. Пароли хранятся bcrypt-хэшем в документе
// профиля, сессия оформляется JWT токеном. Поиск по почте идет через
// индексные документы emails/{email} -> uid.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	jwtlib "github.com/mkotelnikovv/invoice-maker/internal/lib/jwt"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/password"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
)

// ErrEmailTaken возвращается при попытке регистрации на занятую почту.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials возвращается при неверной паре почта/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service реализует операции идентификации пользователей.
type Service struct {
	store     docstore.Store
	tokens    jwtlib.Maker
	log       *slog.Logger
	trialDays int
	now       func() time.Time
}

// New создает новый Service. trialDays — длительность пробного периода,
// назначаемого при регистрации.
func New(store docstore.Store, tokens jwtlib.Maker, log *slog.Logger, trialDays int) *Service {
	return &Service{
		store:     store,
		tokens:    tokens,
		log:       log,
		trialDays: trialDays,
		now:       time.Now,
	}
}

// Tokens возвращает генератор JWT токенов сервиса.
func (s *Service) Tokens() jwtlib.Maker {
	return s.tokens
}

// Register создает профиль пользователя и возвращает его uid.
//
// Профиль получает trialEndsAt на trialDays вперед; дата окончания подписки
// не назначается — ее проставляет внешний биллинговый процесс.
func (s *Service) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	const op = "identity.Register"

	email := normalizeEmail(req.Email)
	if _, err := s.store.Get(ctx, emailIndexPath(email)); err == nil {
		return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	uid := uuid.New().String()
	trialEndsAt := s.now().AddDate(0, 0, s.trialDays)

	fields := docstore.Fields{
		"name":               req.Name,
		"email":              email,
		"passwordHash":       hash,
		"trialEndsAt":        trialEndsAt,
		"subscriptionEndsAt": nil,
		"createdAt":          docstore.ServerTimestamp,
	}
	if err := s.store.Set(ctx, userPath(uid), fields); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Set(ctx, emailIndexPath(email), docstore.Fields{"uid": uid}); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.String("uid", uid))
	return uid, nil
}

// Login проверяет учетные данные и возвращает JWT токен сессии.
func (s *Service) Login(ctx context.Context, req models.DummyLogin) (string, error) {
	const op = "identity.Login"

	email := normalizeEmail(req.Email)
	indexDoc, err := s.store.Get(ctx, emailIndexPath(email))
	if errors.Is(err, docstore.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	uid, ok := indexDoc.Fields["uid"].(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("%s: %w", op, models.ErrMalformedRecord)
	}

	user, err := s.Profile(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(email, uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Profile возвращает типизированный профиль пользователя по uid.
func (s *Service) Profile(ctx context.Context, uid string) (*models.User, error) {
	const op = "identity.Profile"

	doc, err := s.store.Get(ctx, userPath(uid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := models.DecodeUser(uid, doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func userPath(uid string) string {
	return "users/" + uid
}

func emailIndexPath(email string) string {
	return "emails/" + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
