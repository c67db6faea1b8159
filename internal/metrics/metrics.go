// Package metrics holds the Prometheus collectors exported on the metrics port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FollowEvents counts successful follow and unfollow operations.
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialgraph_follow_events_total",
		Help: "Total number of follow graph changes by action",
	}, []string{"action"})

	// LikeEvents counts successful like and unlike operations.
	LikeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialgraph_like_events_total",
		Help: "Total number of likes added or removed by action",
	}, []string{"action"})

	// ContentCreated counts posts and comments written.
	ContentCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialgraph_content_created_total",
		Help: "Total number of posts and comments created",
	}, []string{"kind"})

	// NotificationsCreated counts notifications committed by the fanout.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialgraph_notifications_created_total",
		Help: "Total number of notifications created by verb",
	}, []string{"verb"})

	// SideEffectFailures counts post-commit work that failed and was dropped.
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialgraph_side_effect_failures_total",
		Help: "Total number of failed best-effort side effects by sink",
	}, []string{"sink"})
)
