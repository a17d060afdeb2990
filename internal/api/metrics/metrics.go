// Package metrics defines and registers all custom Prometheus metrics for the
// bug tracker API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at package
// load; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - role: the canonical ROLE_* assigned to the new account
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful account registrations, by role.",
	},
	[]string{"role"},
)

// AccessDeniedTotal counts requests rejected by the RBAC middleware.
// Label:
//   - role: the role that was denied (may be empty for missing claims)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected on role grounds.",
	},
	[]string{"role"},
)

// BugsCreatedTotal counts newly filed bugs.
// Label:
//   - priority: "LOW", "MEDIUM", "HIGH" or "CRITICAL"
var BugsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_created_total",
		Help:      "Total number of bugs filed, by priority.",
	},
	[]string{"priority"},
)

// AttachmentBytesTotal sums the size of all stored attachment uploads.
var AttachmentBytesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachment_bytes_total",
		Help:      "Total bytes of attachment content written to storage.",
	},
)
