package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CouponMetrics records outcomes of the issuance and redemption paths.
type CouponMetrics struct {
	issuances   *prometheus.CounterVec
	activations *prometheus.CounterVec
	redemptions *prometheus.CounterVec
}

// NewCouponMetrics registers the coupon metrics on the provided registerer.
func NewCouponMetrics(reg prometheus.Registerer) *CouponMetrics {
	if reg == nil {
		return &CouponMetrics{}
	}
	issuances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_issuances_total",
		Help: "Coupon issuance attempts by outcome.",
	}, []string{"outcome"})
	activations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_activations_total",
		Help: "Coupon activation attempts by outcome.",
	}, []string{"outcome"})
	redemptions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Coupon redemption attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(issuances, activations, redemptions)
	return &CouponMetrics{
		issuances:   issuances,
		activations: activations,
		redemptions: redemptions,
	}
}

// IncIssuance increments the issuance counter for the given outcome.
func (c *CouponMetrics) IncIssuance(outcome string) {
	if c == nil || c.issuances == nil {
		return
	}
	c.issuances.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncActivation increments the activation counter for the given outcome.
func (c *CouponMetrics) IncActivation(outcome string) {
	if c == nil || c.activations == nil {
		return
	}
	c.activations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncRedemption increments the redemption counter for the given outcome.
func (c *CouponMetrics) IncRedemption(outcome string) {
	if c == nil || c.redemptions == nil {
		return
	}
	c.redemptions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
