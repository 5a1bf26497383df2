package selection

import "time"

// ApprovalStatus enumerates the recognized approval states supplied by the
// entity snapshot source. Values outside this set are preserved as-is and
// ignored by the summarizer.
type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalRejected ApprovalStatus = "rejected"
	ApprovalNone     ApprovalStatus = "none"
)

// LifecycleSnapshot is the read-only lifecycle view of one entity as supplied
// by the snapshot source. The engine classifies it; it never mutates it.
// Absence of an entity from a snapshot page means "unknown", never a default
// of false/nil.
type LifecycleSnapshot struct {
	IsPublished    bool           `json:"isPublished"`
	ArchivedAt     *time.Time     `json:"archivedAt,omitempty"`
	DeletedAt      *time.Time     `json:"deletedAt,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
}

// IsArchived reports whether the entity carries an archive timestamp.
func (s *LifecycleSnapshot) IsArchived() bool { return s.ArchivedAt != nil }

// IsDeleted reports whether the entity carries a soft-delete timestamp.
func (s *LifecycleSnapshot) IsDeleted() bool { return s.DeletedAt != nil }

// EntitySnapshot pairs an entity id with its lifecycle view, plus the display
// fields the dashboard needs to render a page row.
type EntitySnapshot struct {
	ID           string            `json:"id"`
	Kind         ItemKind          `json:"kind"`
	Title        string            `json:"title"`
	ThumbnailRef string            `json:"thumbnailRef,omitempty"`
	Snapshot     LifecycleSnapshot `json:"snapshot"`
}
