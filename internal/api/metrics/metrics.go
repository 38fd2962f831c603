// Package metrics defines and registers all custom Prometheus metrics for
// the user-management API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userapi"

// UsersCreatedTotal counts user records created through the directory.
// Label:
//   - role: the role assigned to the new user ("user", "admin")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user records created, by assigned role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts user records removed through the directory.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user records deleted.",
	},
)

// LoginsTotal counts login attempts that reached the credential check.
// Label:
//   - result: "success", "not_found", or "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LoginsRateLimitedTotal counts login attempts rejected at the boundary
// before reaching the credential check.
var LoginsRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_rate_limited_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - kind: "standard" or "short_lived"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by kind.",
	},
	[]string{"kind"},
)

// QRValidationsTotal counts QR redemption attempts.
// Label:
//   - result: "valid" or "invalid"
var QRValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "qr_validations_total",
		Help:      "Total number of QR token validations, by result.",
	},
	[]string{"result"},
)
