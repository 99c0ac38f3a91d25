// Package metrics holds the process counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistrosGuardados = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "arqueo",
		Name:      "registros_guardados_total",
		Help:      "Daily registers persisted.",
	})

	AlertasDescuadre = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arqueo",
		Name:      "alertas_descuadre_total",
		Help:      "Cash discrepancy alerts raised, by kind.",
	}, []string{"tipo"})

	ArqueosRemotos = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arqueo",
		Name:      "arqueos_remotos_total",
		Help:      "Cashier till counts submitted, by mode (manual, auto).",
	}, []string{"modo"})

	AutosaveFallidos = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "arqueo",
		Name:      "autosave_fallidos_total",
		Help:      "Auto-save attempts that failed.",
	})

	JobsProcesados = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arqueo",
		Name:      "jobs_procesados_total",
		Help:      "Background jobs handled, by type and result.",
	}, []string{"tipo", "resultado"})
)

func init() {
	prometheus.MustRegister(RegistrosGuardados, AlertasDescuadre, ArqueosRemotos, AutosaveFallidos, JobsProcesados)
}
