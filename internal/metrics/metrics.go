package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 购物车与结账指标
// 所有方法允许 nil 接收者，未启用指标时直接忽略
type Metrics struct {
	checkoutAttempts   *prometheus.CounterVec
	checkoutRejected   *prometheus.CounterVec
	checkoutInFlight   prometheus.Counter
	checkoutDuration   prometheus.Histogram
	checkoutUnobserved prometheus.Counter
	cartMutations      *prometheus.CounterVec
	activeCarts        prometheus.Gauge
}

// New 在默认注册器上创建指标
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer 在指定注册器上创建指标
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		checkoutAttempts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "kantin_checkout_attempts_total",
			Help: "Order submissions sent to the canteen backend, by result",
		}, []string{"result"}),
		checkoutRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "kantin_checkout_validation_failures_total",
			Help: "Checkout submissions rejected before any network call, by reason",
		}, []string{"reason"}),
		checkoutInFlight: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kantin_checkout_in_flight_rejections_total",
			Help: "Checkout submissions rejected because another one was in flight",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "kantin_checkout_duration_seconds",
			Help:    "Duration of order submissions to the canteen backend",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		checkoutUnobserved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kantin_checkout_unobserved_results_total",
			Help: "Order results that arrived after the caller went away",
		}),
		cartMutations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "kantin_cart_mutations_total",
			Help: "Cart mutations by operation",
		}, []string{"op"}),
		activeCarts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "kantin_active_carts",
			Help: "Number of carts held in memory",
		}),
	}
}

// RecordCheckout 记录一次发往后端的下单
func (m *Metrics) RecordCheckout(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.checkoutAttempts.WithLabelValues(result).Inc()
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordValidationFailure 记录本地校验失败
func (m *Metrics) RecordValidationFailure(reason string) {
	if m == nil {
		return
	}
	m.checkoutRejected.WithLabelValues(reason).Inc()
}

// RecordInFlightRejection 记录重复提交被拒绝
func (m *Metrics) RecordInFlightRejection() {
	if m == nil {
		return
	}
	m.checkoutInFlight.Inc()
}

// RecordUnobservedResult 记录调用方已离开后才返回的结果
func (m *Metrics) RecordUnobservedResult() {
	if m == nil {
		return
	}
	m.checkoutUnobserved.Inc()
}

// RecordCartMutation 记录购物车变更
func (m *Metrics) RecordCartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

// SetActiveCarts 设置内存中的购物车数量
func (m *Metrics) SetActiveCarts(n int) {
	if m == nil {
		return
	}
	m.activeCarts.Set(float64(n))
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
