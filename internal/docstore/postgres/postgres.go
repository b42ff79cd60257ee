// Package postgres реализует документное хранилище на основе PostgreSQL.
// Документы хранятся в одной таблице documents: путь, коллекция, поля в JSONB
// и время создания, проставляемое базой. Сентинел ServerTimestamp разрешается
// при записи во время сервера хранилища.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkotelnikovv/invoice-maker/internal/docstore"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует интерфейс docstore.Store.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "docstore.postgres.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'documents'
    )`).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("documents table does not exist")
	}
	return nil
}

// Get возвращает документ по полному пути или docstore.ErrNotFound.
func (s *Storage) Get(ctx context.Context, path string) (*docstore.Document, error) {
	const op = "docstore.postgres.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT path, fields, created_at
			  FROM documents WHERE path = $1`
	row := s.DB.QueryRowContext(ctx, query, path)

	doc, err := scanDocument(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, docstore.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// Set записывает документ по полному пути, создавая или перезаписывая его.
func (s *Storage) Set(ctx context.Context, path string, fields docstore.Fields) error {
	const op = "docstore.postgres.Set"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payload, err := marshalFields(fields)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO documents (path, collection, fields)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (path) DO UPDATE SET fields = EXCLUDED.fields`
	if _, err := s.DB.ExecContext(ctx, query, path, parentCollection(path), payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Add добавляет документ в коллекцию со сгенерированным идентификатором
// и возвращает этот идентификатор.
func (s *Storage) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	const op = "docstore.postgres.Add"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payload, err := marshalFields(fields)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := uuid.New().String()
	query := `INSERT INTO documents (path, collection, fields)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query, collection+"/"+id, collection, payload); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// List возвращает документы коллекции в заданном порядке.
func (s *Storage) List(ctx context.Context, collection string, order docstore.Order) ([]*docstore.Document, error) {
	const op = "docstore.postgres.List"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT path, fields, created_at
			  FROM documents
			  WHERE collection = $1`
	switch order {
	case docstore.OrderCreatedAtAsc:
		query += ` ORDER BY created_at ASC`
	case docstore.OrderCreatedAtDesc:
		query += ` ORDER BY created_at DESC`
	}

	rows, err := s.DB.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*docstore.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// marshalFields сериализует поля в JSON, заменяя сентинел ServerTimestamp
// временем сервера хранилища в формате RFC3339.
func marshalFields(fields docstore.Fields) ([]byte, error) {
	resolved := make(map[string]any, len(fields))
	now := time.Now().UTC()
	for key, value := range fields {
		if value == docstore.ServerTimestamp {
			resolved[key] = now.Format(time.RFC3339Nano)
			continue
		}
		if t, ok := value.(time.Time); ok {
			resolved[key] = t.UTC().Format(time.RFC3339Nano)
			continue
		}
		resolved[key] = value
	}
	return json.Marshal(resolved)
}

func scanDocument(scan func(dest ...any) error) (*docstore.Document, error) {
	var doc docstore.Document
	var payload []byte
	if err := scan(&doc.Path, &payload, &doc.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &doc.Fields); err != nil {
		return nil, err
	}
	doc.ID = lastSegment(doc.Path)
	return &doc, nil
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func parentCollection(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}
