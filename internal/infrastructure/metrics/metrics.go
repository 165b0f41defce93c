package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers the service-wide counter family. Components bump it
// with a result label such as "files_uploaded_total" or "quota_rejected_total".
func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storageapi",
			Name:      "general_counters",
			Help:      "Operation outcomes by result.",
		},
		[]string{"result"})
}
