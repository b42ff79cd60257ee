package models

import "time"

// TrialNotice сообщение для воркера-отправителя о завершении пробного периода.
type TrialNotice struct {
	UserUID     string    `json:"user_uid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TrialEndsAt time.Time `json:"trial_ends_at"`
}
