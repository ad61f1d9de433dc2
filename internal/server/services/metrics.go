package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the domain counters.
const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultConflict = "conflict"
	resultUnknown  = "unknown_user"
	resultDenied   = "bad_password"
	resultError    = "error"
)

var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_signups_total",
			Help: "Signup attempts by result.",
		},
		[]string{"result"},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_logins_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_uploads_total",
			Help: "Upload attempts by result.",
		},
		[]string{"result"},
	)

	revokedTokens = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gallery_revoked_tokens",
		Help: "Logged-out tokens still remembered by the revocation list.",
	})
)
