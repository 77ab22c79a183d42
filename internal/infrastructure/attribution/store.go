// Package attribution persists the visitor acquisition record behind a small
// TTL-aware store interface, so the storage medium (cookie, server session)
// can be swapped without touching call sites. Expiry is evaluated inside the
// store; callers never see an expired record.
package attribution

import (
	"github.com/gin-gonic/gin"

	"rosmarino/internal/domain/attribution"
)

// Store reads and writes the acquisition record for the current visitor.
// All implementations are best-effort: storage failures are swallowed, since
// attribution must never block a submission.
type Store interface {
	// Read returns the current record, or nil when absent or expired.
	// Reading an expired record clears it from the backing store.
	Read(c *gin.Context) *attribution.Record

	// Write stores a record. Callers are responsible for the
	// first-write-wins policy (write only when Read returns nil).
	Write(c *gin.Context, rec *attribution.Record)

	// Clear removes the record.
	Clear(c *gin.Context)
}
