package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"storefront/internal/cart"
)

func TestCartMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.Mutation("add_item")
	m.Mutation("add_item")
	m.Mutation("")
	m.CouponApplied("FLAT500")
	m.CouponRejected(cart.CouponMinimumNotMet)
	m.CouponDetached("FLAT500")
	m.PersistFailed("lines")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("add_item")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.couponApplied.WithLabelValues("FLAT500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.couponRejected.WithLabelValues("coupon_minimum_not_met")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.couponDetached.WithLabelValues("FLAT500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailed.WithLabelValues("lines")))
}

func TestCartMetrics_NilIsNoop(t *testing.T) {
	var m *CartMetrics
	assert.Nil(t, NewCartMetrics(nil))
	assert.NotPanics(t, func() {
		m.Mutation("add_item")
		m.CouponApplied("X")
		m.CouponRejected(cart.CouponNotFound)
		m.CouponDetached("X")
		m.PersistFailed("lines")
	})
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/products/:id", 200, 15*time.Millisecond)
	m.Observe("GET", "/products/:id", 200, 5*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))

	var nilMetrics *HTTPMetrics
	nilMetrics.Observe("GET", "/", 200, time.Millisecond)
}
