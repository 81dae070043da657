// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// Core services depend on these interfaces only; concrete adapters live
// under internal/adapters/driven and are wired at startup.
package driven
