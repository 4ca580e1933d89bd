// Package service exposes an optional HTTP API to inspect a running node and
// scrape its Prometheus metrics.
package service
