// Package selection provides domain entities for the operator's bulk-selection
// set. It defines the selected-item record that survives pagination and the
// aggregate lifecycle summary the eligibility engine reasons over.
package selection

// ItemKind identifies which class of domain object an entry in the selection
// set refers to. Identity is carried by ID alone; the kind is retained for
// breakdown reporting only.
type ItemKind string

const (
	KindAsset      ItemKind = "asset"
	KindExecution  ItemKind = "execution"
	KindCollection ItemKind = "collection"
	KindGenerative ItemKind = "generative"
)

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindAsset, KindExecution, KindCollection, KindGenerative:
		return true
	}
	return false
}

// SelectedItem is one entry in the operator's selection set. DisplayName and
// ThumbnailRef are denormalized display metadata cached at select time so the
// dashboard can render the selection tray without re-fetching entities.
type SelectedItem struct {
	ID           string   `json:"id"`
	Kind         ItemKind `json:"kind"`
	DisplayName  string   `json:"displayName"`
	ThumbnailRef string   `json:"thumbnailRef,omitempty"`
}

// ApprovalCounts breaks the selection down by approval state. Entities whose
// approval status is absent or unrecognized count toward none of the three.
type ApprovalCounts struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// SelectionSummary holds aggregate lifecycle counts over the intersection of
// the selected ids and the entities currently known to the client. A nil
// summary means no selected entity was present in the supplied snapshot set
// and eligibility cannot be evaluated.
type SelectionSummary struct {
	PublishedCount   int            `json:"publishedCount"`
	UnpublishedCount int            `json:"unpublishedCount"`
	ArchivedCount    int            `json:"archivedCount"`
	DeletedCount     int            `json:"deletedCount"`
	Approval         ApprovalCounts `json:"approval"`
}

// Total returns the number of entities folded into this summary.
func (s *SelectionSummary) Total() int {
	return s.PublishedCount + s.UnpublishedCount
}
