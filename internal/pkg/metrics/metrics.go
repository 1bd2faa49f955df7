// Package metrics defines and registers all custom Prometheus metrics for the
// credential service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts account creation attempts.
// Label:
//   - outcome: "success", "duplicate_email", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts. The "denied" outcome deliberately does
// not distinguish unknown email from wrong password.
// Label:
//   - outcome: "success", "denied", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ResetRequestsTotal counts password-reset requests. "sent" means the mail
// was handed to the notifier; "mail_failed" means the token was issued but
// the notifier rejected the message.
// Label:
//   - outcome: "sent", "mail_failed", "unknown_email", "error"
var ResetRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_requests_total",
		Help:      "Total number of password reset requests, by outcome.",
	},
	[]string{"outcome"},
)

// ResetCompletionsTotal counts reset-completion attempts.
// Label:
//   - outcome: "success", "invalid_token", "password_mismatch",
//     "invalid_password", "error"
var ResetCompletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_completions_total",
		Help:      "Total number of password reset completions, by outcome.",
	},
	[]string{"outcome"},
)

// MailDispatchTotal counts outbound notification deliveries.
// Label:
//   - result: "ok" or "error"
var MailDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dispatch_total",
		Help:      "Total number of notification dispatch attempts, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of messages waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each mail dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
