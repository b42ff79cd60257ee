package pages

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	handler, err := New(logger)
	require.NoError(t, err)
	return handler
}

func TestPages(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name     string
		path     string
		serve    func(http.ResponseWriter, *http.Request)
		contains []string
	}{
		{
			name:  "главная страница",
			path:  "/",
			serve: handler.Home,
			contains: []string{
				"Committed To People Committed To The Future",
				"Fast Invoicing",
				"15k+",
			},
		},
		{
			name:  "страница о компании",
			path:  "/about",
			serve: handler.About,
			contains: []string{
				"Building Simple Tools For Real Businesses",
				"Our Story",
			},
		},
		{
			name:  "страница услуг",
			path:  "/services",
			serve: handler.Services,
			contains: []string{
				"Smart Invoicing",
				"Share &amp; Get Paid",
			},
		},
		{
			name:  "страница контактов",
			path:  "/contact",
			serve: handler.Contact,
			contains: []string{
				"support@saasto.com",
				"Karachi, Pakistan",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			tt.serve(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			body := w.Body.String()
			for _, fragment := range tt.contains {
				assert.Contains(t, body, fragment)
			}
		})
	}
}
