package sandbox

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics owns a private registry so that several sandboxes can coexist in
// one process.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	orders   prometheus.Counter
	logins   *prometheus.CounterVec
}

func newMetrics(st *state) *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printmg",
			Subsystem: "sandbox",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "printmg",
			Subsystem: "sandbox",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		orders: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "printmg",
			Subsystem: "sandbox",
			Name:      "orders_submitted_total",
			Help:      "Orders accepted by the order endpoint",
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printmg",
			Subsystem: "sandbox",
			Name:      "logins_total",
			Help:      "Login attempts by method and outcome",
		}, []string{"method", "outcome"}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "printmg",
		Subsystem: "sandbox",
		Name:      "orders_active",
		Help:      "Orders outside the trash",
	}, func() float64 {
		return float64(st.activeOrders())
	})

	return m
}

func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *metrics) login(method string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.logins.WithLabelValues(method, outcome).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
