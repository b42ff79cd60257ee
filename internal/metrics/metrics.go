// Package metrics содержит счетчики Prometheus для бизнес-операций приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvoicesCreated — количество успешно сохраненных счетов.
	InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_maker_invoices_created_total",
		Help: "Total number of invoices saved to the document store.",
	})

	// PDFRendered — количество сгенерированных PDF документов.
	PDFRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_maker_pdf_rendered_total",
		Help: "Total number of invoice PDF documents rendered.",
	})

	// PlanGateDenied — количество запросов, отклоненных по истечении плана.
	PlanGateDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_maker_plan_gate_denied_total",
		Help: "Total number of invoice creation attempts denied by the plan gate.",
	})
)
