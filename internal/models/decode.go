package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRecord возвращается, когда документ внешнего хранилища
// не удается отобразить в типизированную структуру: отсутствует обязательное
// поле или поле имеет неожиданный тип. Неполные документы не превращаются
// молча в нулевые значения.
var ErrMalformedRecord = errors.New("malformed record")

// DecodeUser отображает бесструктурные поля документа users/{uid}
// в типизированную структуру User.
func DecodeUser(uid string, fields map[string]any) (*User, error) {
	const op = "models.DecodeUser"

	name, err := fieldString(fields, "name")
	if err != nil {
		// Профили, созданные ранними версиями, хранят название магазина
		if name, err = fieldString(fields, "shopName"); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	email, err := fieldString(fields, "email")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	hash, err := fieldString(fields, "passwordHash")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &User{
		UID:          uid,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if user.TrialEndsAt, err = fieldTimeOptional(fields, "trialEndsAt"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.SubscriptionEndsAt, err = fieldTimeOptional(fields, "subscriptionEndsAt"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if createdAt, err := fieldTimeOptional(fields, "createdAt"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	} else if createdAt != nil {
		user.CreatedAt = *createdAt
	}
	return user, nil
}

// DecodeInvoice отображает бесструктурные поля документа users/{uid}/invoices/{id}
// в типизированную структуру Invoice. Итоговая сумма берется как сохранена,
// без пересчета по строкам.
func DecodeInvoice(id string, fields map[string]any) (*Invoice, error) {
	const op = "models.DecodeInvoice"

	invoiceNo, err := fieldString(fields, "invoiceNo")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	customerName, err := fieldString(fields, "customerName")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total, err := fieldNumber(fields, "total")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := fieldItems(fields, "items")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	inv := &Invoice{
		ID:           id,
		InvoiceNo:    invoiceNo,
		CustomerName: customerName,
		Items:        items,
		Total:        total,
	}

	if paid, ok := fields["paid"].(bool); ok {
		inv.Paid = paid
	}
	if createdAt, err := fieldTimeOptional(fields, "createdAt"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	} else if createdAt != nil {
		inv.CreatedAt = *createdAt
	}
	return inv, nil
}

func fieldString(fields map[string]any, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedRecord, key)
	}
	return value, nil
}

func fieldNumber(fields map[string]any, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	switch value := raw.(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	default:
		return 0, fmt.Errorf("%w: field %q is not a number", ErrMalformedRecord, key)
	}
}

// fieldTimeOptional возвращает nil без ошибки, если поле отсутствует или равно null.
// Значение поля — время в формате RFC3339 либо time.Time.
func fieldTimeOptional(fields map[string]any, key string) (*time.Time, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch value := raw.(type) {
	case time.Time:
		return &value, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q is not a timestamp", ErrMalformedRecord, key)
		}
		return &parsed, nil
	default:
		return nil, fmt.Errorf("%w: field %q is not a timestamp", ErrMalformedRecord, key)
	}
}

func fieldItems(fields map[string]any, key string) ([]LineItem, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	rawItems, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not a list", ErrMalformedRecord, key)
	}
	items := make([]LineItem, 0, len(rawItems))
	for idx, rawItem := range rawItems {
		itemFields, ok := rawItem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not a mapping", ErrMalformedRecord, idx)
		}
		product, err := fieldString(itemFields, "product")
		if err != nil {
			return nil, err
		}
		quantity, err := fieldNumber(itemFields, "quantity")
		if err != nil {
			return nil, err
		}
		price, err := fieldNumber(itemFields, "price")
		if err != nil {
			return nil, err
		}
		items = append(items, LineItem{
			Product:  product,
			Quantity: int(quantity),
			Price:    price,
		})
	}
	return items, nil
}
