// Package pages отдает маркетинговые страницы сайта: главную, "О нас",
// "Услуги" и "Контакты". Шаблоны встроены в бинарник.
package pages

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/mkotelnikovv/invoice-maker/internal/lib/sl"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler отдает маркетинговые страницы.
type Handler struct {
	log       *slog.Logger
	templates *template.Template
}

// New разбирает встроенные шаблоны и создает Handler.
func New(log *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		log:       log,
		templates: tmpl,
	}, nil
}

type feature struct {
	Title string
	Desc  string
}

type step struct {
	Number string
	Title  string
	Desc   string
}

type stat struct {
	Number string
	Label  string
}

type homeData struct {
	Features []feature
	Steps    []step
	Stats    []stat
}

// Home обрабатывает GET / и отдает главную страницу.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html", homeData{
		Features: []feature{
			{Title: "Fast Invoicing", Desc: "Generate professional invoices in seconds."},
			{Title: "Customer Management", Desc: "Track your clients easily and efficiently."},
			{Title: "Secure & Reliable", Desc: "Cloud infrastructure with advanced security."},
		},
		Steps: []step{
			{Number: "01", Title: "Sign Up", Desc: "Start your account quickly and easily."},
			{Number: "02", Title: "Add Products", Desc: "Add your items and customers effortlessly."},
			{Number: "03", Title: "Send Invoices", Desc: "Share invoices and get paid faster."},
		},
		Stats: []stat{
			{Number: "15k+", Label: "Active Users"},
			{Number: "50k+", Label: "Invoices Created"},
			{Number: "99.9%", Label: "Uptime Reliability"},
			{Number: "10k+", Label: "Happy Customers"},
		},
	})
}

type servicesData struct {
	Services []feature
	Steps    []step
}

// Services обрабатывает GET /services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "services.html", servicesData{
		Services: []feature{
			{Title: "Smart Invoicing", Desc: "Create professional invoices in seconds. Auto calculations, PDF export, and easy sharing."},
			{Title: "Customer Management", Desc: "Keep all customer records in one place. Track payments and history effortlessly."},
			{Title: "Business Insights", Desc: "Understand your performance with clear stats on sales, invoices, and revenue."},
			{Title: "Save Time", Desc: "Reduce paperwork and manual tasks so you can focus on growing your business."},
			{Title: "Secure Data", Desc: "Your data is protected with modern security and cloud infrastructure."},
			{Title: "Easy To Use", Desc: "Designed for everyone — no technical knowledge required."},
		},
		Steps: []step{
			{Number: "01", Title: "Create Account", Desc: "Sign up in seconds and set up your business profile."},
			{Number: "02", Title: "Create Invoices", Desc: "Add products, prices, and customers easily."},
			{Number: "03", Title: "Share & Get Paid", Desc: "Download PDFs or send invoices directly to customers."},
		},
	})
}

// About обрабатывает GET /about.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about.html", nil)
}

// Contact обрабатывает GET /contact.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "contact.html", nil)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	const op = "pages.render"
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("failed to render page",
			slog.String("op", op),
			slog.String("template", name),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err))
	}
}
