package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// SessionsCreatedTotal counts new invoice sessions.
	SessionsCreatedTotal prometheus.Counter
	// DocumentEditsTotal counts applied document edits by operation.
	DocumentEditsTotal *prometheus.CounterVec
	// PDFRendersTotal counts PDF export outcomes.
	PDFRendersTotal *prometheus.CounterVec
	// PDFRenderLatency records PDF render latency in milliseconds.
	PDFRenderLatency prometheus.Histogram
	// LogoUploadsTotal counts logo upload outcomes.
	LogoUploadsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		SessionsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Total number of invoice sessions created.",
		})
		DocumentEditsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_edits_total",
			Help:      "Count of applied document edits by operation.",
		}, []string{"operation"})
		PDFRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_renders_total",
			Help:      "Count of PDF export outcomes.",
		}, []string{"result"})
		PDFRenderLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_render_duration_ms",
			Help:      "Latency for PDF rendering in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		})
		LogoUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logo_uploads_total",
			Help:      "Count of logo upload outcomes.",
		}, []string{"result"})

		mustRegisterCollector(reg, SessionsCreatedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				SessionsCreatedTotal = v
			}
		})
		mustRegisterCollector(reg, DocumentEditsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DocumentEditsTotal = v
			}
		})
		mustRegisterCollector(reg, PDFRendersTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PDFRendersTotal = v
			}
		})
		mustRegisterCollector(reg, PDFRenderLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				PDFRenderLatency = v
			}
		})
		mustRegisterCollector(reg, LogoUploadsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				LogoUploadsTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
