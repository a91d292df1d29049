package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal            = "http_requests_total"
	HTTPRequestDurationSeconds  = "http_request_duration_seconds"
	CommissionInstallmentsTotal = "commission_installments_total"
	CommissionAmountTotal       = "commission_amount_total"
	CommissionErrorsTotal       = "commission_errors_total"
	CommissionCompletedTotal    = "commission_completed_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		CommissionInstallmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CommissionInstallmentsTotal,
			Help: "Count of daily commission installments credited to sponsors",
		}, []string{"level"}),
		CommissionAmountTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CommissionAmountTotal,
			Help: "Sum of commission amounts credited to sponsors",
		}, []string{"level"}),
		CommissionErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CommissionErrorsTotal,
			Help: "Count of commission obligations which failed to be processed",
		}, []string{"level"}),
		CommissionCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CommissionCompletedTotal,
			Help: "Count of commission obligations which completed their schedule",
		}, []string{"level"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
