// Package metrics 进程内 prometheus 指标，统一挂在 /metrics。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "village_empire"

var (
	registry = prometheus.NewRegistry()

	// VillageOps 村庄操作计数，result 为 ok 或失败原因码
	VillageOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "village_ops_total",
		Help:      "village operations by op and result",
	}, []string{"op", "result"})

	// ConstructionsCompleted 轮询或显式完成的建造数
	ConstructionsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "constructions_completed_total",
		Help:      "constructions that became active",
	})

	// VillageActors 当前常驻内存的村庄 actor 数
	VillageActors = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "village_actors",
		Help:      "village actors currently alive",
	})

	// WsConnections 当前 websocket 连接数
	WsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "open websocket connections",
	})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "http request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		VillageOps,
		ConstructionsCompleted,
		VillageActors,
		WsConnections,
		httpDuration,
	)
}

// ObserveOp 记录一次村庄操作，reason 为空视为成功。
func ObserveOp(op, reason string) {
	if reason == "" {
		reason = "ok"
	}
	VillageOps.WithLabelValues(op, reason).Inc()
}

// ObserveHTTP 记录一次 http 请求耗时。
func ObserveHTTP(method, route string, status int, cost time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(cost.Seconds())
}

// Handler 暴露本进程的指标。
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Gatherer 测试里读取指标用。
func Gatherer() prometheus.Gatherer {
	return registry
}
