// Package messaging publishes messages to a broker without tying callers to
// it. NATS and Kafka are supported; the noop driver discards every message
// and is the default when no broker is configured.
package messaging
