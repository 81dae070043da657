// Package driving provides interfaces for inbound adapters
// (primary ports). The HTTP API and CLI depend on these.
package driving
