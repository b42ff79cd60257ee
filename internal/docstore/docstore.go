// Package docstore определяет узкий интерфейс иерархического документного
// хранилища: документы — бесструктурные отображения полей, сгруппированные
// в коллекции по пути вида users/{uid}/invoices/{id}. Вся персистентность
// приложения проходит через этот интерфейс.
package docstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда документ по указанному пути отсутствует.
var ErrNotFound = errors.New("document not found")

// Fields — бесструктурное отображение полей документа.
type Fields map[string]any

// serverTimestamp — тип-страж для значения ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp — сентинел-значение поля: при записи документа хранилище
// заменяет его временем сервера.
var ServerTimestamp = serverTimestamp{}

// Order задает порядок выдачи документов коллекции.
type Order string

const (
	// OrderNone — порядок не задан.
	OrderNone Order = ""
	// OrderCreatedAtAsc — по времени создания, старые первыми.
	OrderCreatedAtAsc Order = "createdAt asc"
	// OrderCreatedAtDesc — по времени создания, новые первыми.
	OrderCreatedAtDesc Order = "createdAt desc"
)

// Document представляет документ хранилища: идентификатор внутри коллекции,
// полный путь, поля и время создания, проставленное сервером.
type Document struct {
	ID        string
	Path      string
	Fields    Fields
	CreatedAt time.Time
}

// Store описывает операции документного хранилища, потребляемые приложением.
type Store interface {
	// Get возвращает документ по полному пути или ErrNotFound.
	Get(ctx context.Context, path string) (*Document, error)
	// Set записывает документ по полному пути, создавая или перезаписывая его.
	Set(ctx context.Context, path string, fields Fields) error
	// Add добавляет документ в коллекцию со сгенерированным идентификатором.
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	// List возвращает документы коллекции в заданном порядке.
	List(ctx context.Context, collection string, order Order) ([]*Document, error)
}
