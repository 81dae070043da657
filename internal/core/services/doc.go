// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ChatService owns all retrieval and generation fallback decisions;
// Ingestor owns the background write path; DocumentService owns the
// corpus lifecycle.
package services
