package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "osmotrader"

var (
	// PriceQuotes counts the quotes served by the price oracle by pair and
	// source (live, cached, stale, fallback).
	PriceQuotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_quotes_total",
		Help:      "Number of price quotes served, by pair and source.",
	}, []string{"pair", "source"})

	// OrdersExecuted counts the swaps submitted successfully by order kind.
	OrdersExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_executed_total",
		Help:      "Number of swaps submitted, by order kind.",
	}, []string{"kind"})

	// ExecutionFailures counts the swaps that could not be submitted by order
	// kind.
	ExecutionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "execution_failures_total",
		Help:      "Number of failed swap submissions, by order kind.",
	}, []string{"kind"})

	// Reconciliations counts the outcomes of transaction reconciliations.
	Reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciliations_total",
		Help:      "Number of transaction reconciliations, by result.",
	}, []string{"result"})
)
