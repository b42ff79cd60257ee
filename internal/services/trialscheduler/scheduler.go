// Package trialscheduler находит пользователей, у которых сегодня
// заканчивается пробный период, и публикует уведомления в RabbitMQ.
package trialscheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
	"github.com/mkotelnikovv/invoice-maker/internal/models"
	"github.com/mkotelnikovv/invoice-maker/internal/rabbitmq"
)

// Store описывает доступ к документам пользователей.
type Store interface {
	List(ctx context.Context, collection string, order docstore.Order) ([]*docstore.Document, error)
}

type SchedulerService struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(store Store, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// FindExpiringTrialsDueToday запускает поиск раз в сутки.
func (s *SchedulerService) FindExpiringTrialsDueToday(ctx context.Context, channel *amqp.Channel) {
	s.runFindExpiringTrials(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringTrials(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringTrials(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find expiring trial periods")
	notices, err := s.CollectExpiringTrials(ctx)
	if err != nil {
		s.log.Error("failed to find users", sl.Err(err))
		return
	}
	if len(notices) == 0 {
		s.log.Info("no expiring trial periods found")
		return
	}
	s.log.Info("found expiring trial periods", "count", len(notices))
	for _, notice := range notices {
		err = rabbitmq.PublishMessage(channel, "notifications", "trial", notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

// CollectExpiringTrials возвращает уведомления для пользователей, у которых
// пробный период заканчивается сегодня и нет активной подписки.
func (s *SchedulerService) CollectExpiringTrials(ctx context.Context) ([]*models.TrialNotice, error) {
	docs, err := s.store.List(ctx, "users", docstore.OrderNone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var notices []*models.TrialNotice
	for _, doc := range docs {
		user, err := models.DecodeUser(doc.ID, doc.Fields)
		if err != nil {
			s.log.Warn("skipping malformed user document",
				slog.String("path", doc.Path), sl.Err(err))
			continue
		}
		if user.TrialEndsAt == nil {
			continue
		}
		if user.SubscriptionEndsAt != nil && now.Before(*user.SubscriptionEndsAt) {
			continue
		}
		if !sameDay(*user.TrialEndsAt, now) {
			continue
		}
		notices = append(notices, &models.TrialNotice{
			UserUID:     user.UID,
			Name:        user.Name,
			Email:       user.Email,
			TrialEndsAt: *user.TrialEndsAt,
		})
	}
	return notices, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
