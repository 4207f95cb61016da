// Package metrics registra las métricas Prometheus del servicio (expuestas en /metrics).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Auditoría
	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intranet_audit_write_failures_total",
		Help: "Escrituras de auditoría fallidas (descartadas sin afectar la operación principal)",
	})

	// Contenido
	ContentVersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intranet_content_version_conflicts_total",
		Help: "Conflictos de versión al guardar contenido de sección (antes de reintentar)",
	})

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intranet_http_requests_total",
		Help: "Total de peticiones HTTP atendidas",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intranet_http_request_duration_seconds",
		Help:    "Latencia de peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Almacenamiento
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intranet_storage_operations_total",
		Help: "Operaciones sobre el almacenamiento de archivos",
	}, []string{"driver", "op", "status"})
)
