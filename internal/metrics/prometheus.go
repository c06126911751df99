package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var SMSSendTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sms_send_total",
		Help: "Total number of SMS send attempts by outcome",
	},
	[]string{"status"},
)

var SMSSendDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "sms_send_duration_seconds",
		Help:    "Time taken by the SMS provider to accept a message",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"status"},
)

var SMSSkippedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sms_skipped_total",
		Help: "Pending notifications not sent, by reason",
	},
	[]string{"reason"},
)

var DispatchRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sms_dispatch_runs_total",
		Help: "Number of dispatch passes by scope",
	},
	[]string{"scope"},
)

var QueueJobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sms_queue_jobs_total",
		Help: "Dispatch jobs published or consumed, by result",
	},
	[]string{"result"},
)

var once sync.Once

// Init registers every collector with the default registry. It is safe to
// call from both binaries and from tests.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(SMSSendTotal)
		prometheus.MustRegister(SMSSendDuration)
		prometheus.MustRegister(SMSSkippedTotal)
		prometheus.MustRegister(DispatchRunsTotal)
		prometheus.MustRegister(QueueJobsTotal)
	})
}
