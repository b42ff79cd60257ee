// Package plangate реализует проверку права на создание счетов
// по датам окончания пробного периода и оплаченной подписки.
//
// Evaluate — чистая функция трех аргументов без побочных эффектов.
// Отсутствующие или некорректные даты трактуются как "не активно",
// никогда как ошибка.
package plangate

import "time"

// Status — человеко-читаемый статус плана пользователя.
type Status string

const (
	// StatusSubscription — оплаченная подписка активна.
	StatusSubscription Status = "subscription"
	// StatusTrial — пробный период активен.
	StatusTrial Status = "trial"
	// StatusExpired — ни подписка, ни пробный период не активны.
	StatusExpired Status = "expired"
)

// Evaluate возвращает разрешение на создание счета и статус плана.
//
// Подписка имеет приоритет: если subscriptionEndsAt задана и строго в будущем,
// доступ разрешен со статусом subscription независимо от состояния пробного
// периода. Иначе, если trialEndsAt задана и строго в будущем — статус trial.
// Во всех остальных случаях, включая отсутствие обеих дат, доступ запрещен.
func Evaluate(now time.Time, trialEndsAt, subscriptionEndsAt *time.Time) (bool, Status) {
	if subscriptionEndsAt != nil && now.Before(*subscriptionEndsAt) {
		return true, StatusSubscription
	}
	if trialEndsAt != nil && now.Before(*trialEndsAt) {
		return true, StatusTrial
	}
	return false, StatusExpired
}
