// Package models содержит доменные структуры профиля пользователя и счета,
// а также вспомогательные типы для приёма данных из JSON-запросов
// и декодирования бесструктурных документов внешнего хранилища.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// Поля TrialEndsAt и SubscriptionEndsAt могут быть nil — это означает,
// что соответствующий период не назначен. Даты окончания проставляются
// при регистрации или внешним биллинговым процессом.
type User struct {
	UID                string     // Уникальный идентификатор пользователя
	Name               string     // Имя пользователя или название магазина
	Email              string     // Электронная почта
	PasswordHash       string     // Хэш пароля пользователя
	TrialEndsAt        *time.Time // Дата истечения пробного периода
	SubscriptionEndsAt *time.Time // Дата истечения оплаченной подписки на сервис
	CreatedAt          time.Time  // Дата создания профиля
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`     // Имя или название магазина
	Email    string `json:"email" validate:"required,email"`            // Электронная почта
	Password string `json:"password" validate:"required,min=6,max=72"`  // Пароль
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`    // Электронная почта
	Password string `json:"password" validate:"required,min=6"` // Пароль
}
