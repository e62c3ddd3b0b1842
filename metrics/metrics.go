/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package metrics exposes Prometheus collectors for GraphQL operations, bus activity and store
// contents.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/botobag/rendezvous/pubsub"
	"github.com/botobag/rendezvous/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rendezvous"

// Metrics owns a registry and the collectors registered to it.
type Metrics struct {
	registry *prometheus.Registry

	operations    *prometheus.CounterVec
	published     *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	subscriptions *prometheus.GaugeVec
	requests      *prometheus.HistogramVec
}

var _ pubsub.Observer = (*Metrics)(nil)

// New creates collectors in a fresh registry. The registry also carries the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "operations_total",
			Help:      "GraphQL operations executed, by schema, operation type and outcome.",
		}, []string{"schema", "type", "outcome"}),

		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "published_total",
			Help:      "Payloads published, by topic.",
		}, []string{"topic"}),

		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "deliveries_total",
			Help:      "Payloads delivered to subscriptions, by topic.",
		}, []string{"topic"}),

		subscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "subscriptions",
			Help:      "Subscriptions currently attached, by topic.",
		}, []string{"topic"}),

		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests, by path and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.published,
		m.deliveries,
		m.subscriptions,
		m.requests,
	)

	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WatchStore registers a gauge reporting the number of records per kind in s.
func (m *Metrics) WatchStore(s *store.Store) {
	for _, kind := range []store.Kind{store.KindUser, store.KindEvent, store.KindLocation, store.KindParticipant} {
		kind := kind
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "store",
			Name:        "records",
			Help:        "Records held in the store, by kind.",
			ConstLabels: prometheus.Labels{"kind": string(kind)},
		}, func() float64 {
			return float64(s.Counts()[kind])
		}))
	}
}

// ObserveOperation counts one executed operation. operationType is "query", "mutation" or
// "subscription".
func (m *Metrics) ObserveOperation(schema string, operationType string, failed bool) {
	outcome := "success"
	if failed {
		outcome = "error"
	}
	m.operations.WithLabelValues(schema, operationType, outcome).Inc()
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(path string, code int, duration time.Duration) {
	m.requests.WithLabelValues(path, strconv.Itoa(code)).Observe(duration.Seconds())
}

// Published implements pubsub.Observer.
func (m *Metrics) Published(topic pubsub.Topic, delivered int) {
	m.published.WithLabelValues(topic.String()).Inc()
	m.deliveries.WithLabelValues(topic.String()).Add(float64(delivered))
}

// SubscribersChanged implements pubsub.Observer.
func (m *Metrics) SubscribersChanged(topic pubsub.Topic, count int) {
	m.subscriptions.WithLabelValues(topic.String()).Set(float64(count))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}
