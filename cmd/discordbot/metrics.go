/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type botMetrics struct {
	commands *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	rejected prometheus.Counter
}

func newBotMetrics(reg prometheus.Registerer) *botMetrics {
	factory := promauto.With(reg)

	return &botMetrics{
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tshstats",
			Subsystem: "discordbot",
			Name:      "commands_total",
			Help:      "Slash commands handled, by subcommand and outcome.",
		}, []string{"subcommand", "outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tshstats",
			Subsystem: "discordbot",
			Name:      "command_duration_seconds",
			Help:      "Time spent producing a slash command response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"subcommand"}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tshstats",
			Subsystem: "discordbot",
			Name:      "unverified_requests_total",
			Help:      "Interaction requests whose signature did not verify.",
		}),
	}
}

func (m *botMetrics) observe(sub TshSubCommand, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.commands.WithLabelValues(string(sub), outcome).Inc()
	m.latency.WithLabelValues(string(sub)).Observe(time.Since(start).Seconds())
}
