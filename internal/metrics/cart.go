// Package metrics holds the prometheus collectors for cart activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"storefront/internal/cart"
)

// CartMetrics counts cart mutations, coupon outcomes and persistence
// failures. A nil *CartMetrics records nothing.
type CartMetrics struct {
	mutations      *prometheus.CounterVec
	couponApplied  *prometheus.CounterVec
	couponRejected *prometheus.CounterVec
	couponDetached *prometheus.CounterVec
	persistFailed  *prometheus.CounterVec
}

var _ cart.Recorder = (*CartMetrics)(nil)

// NewCartMetrics registers the cart collectors on reg.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return nil
	}
	m := &CartMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		couponApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_coupon_applied_total",
			Help: "Coupons applied successfully, by code.",
		}, []string{"code"}),
		couponRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_coupon_rejected_total",
			Help: "Coupon applications rejected, by reason.",
		}, []string{"reason"}),
		couponDetached: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_coupon_detached_total",
			Help: "Coupons removed automatically after the subtotal fell below their minimum.",
		}, []string{"code"}),
		persistFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_persist_failures_total",
			Help: "Failed writes to the cart slot, by payload.",
		}, []string{"payload"}),
	}
	reg.MustRegister(m.mutations, m.couponApplied, m.couponRejected, m.couponDetached, m.persistFailed)
	return m
}

func (m *CartMetrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *CartMetrics) CouponApplied(code string) {
	if m == nil {
		return
	}
	m.couponApplied.WithLabelValues(normalizeLabel(code)).Inc()
}

func (m *CartMetrics) CouponRejected(reason cart.CouponFailure) {
	if m == nil {
		return
	}
	m.couponRejected.WithLabelValues(normalizeLabel(string(reason))).Inc()
}

func (m *CartMetrics) CouponDetached(code string) {
	if m == nil {
		return
	}
	m.couponDetached.WithLabelValues(normalizeLabel(code)).Inc()
}

func (m *CartMetrics) PersistFailed(payload string) {
	if m == nil {
		return
	}
	m.persistFailed.WithLabelValues(normalizeLabel(payload)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
