// Package metrics defines and registers all custom Prometheus metrics for
// the parcel API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parcel"

// PaymentsConfirmedTotal counts confirm outcomes.
// Label:
//   - result: "confirmed", "replayed", "unsettled", "partial" (parcel marked
//     paid but record insert failed)
var PaymentsConfirmedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_confirmed_total",
		Help:      "Total number of payment confirmation calls, by outcome.",
	},
	[]string{"result"},
)

// CheckoutSessionsTotal counts checkout sessions opened with the payment provider.
var CheckoutSessionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of external checkout sessions created.",
	},
)

// AuthFailuresTotal counts rejected requests at the authorization gate.
// Label:
//   - reason: "unauthorized" (identity check failed) or "forbidden" (role check failed)
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
	[]string{"reason"},
)

// RiderStatusTotal counts rider status transitions applied by admins.
// Label:
//   - status: the new status ("approved", "rejected", "pending")
var RiderStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rider_status_total",
		Help:      "Total number of rider status updates, by resulting status.",
	},
	[]string{"status"},
)
