// Package action defines the closed taxonomy of lifecycle commands the
// dashboard can apply to a selection. The catalog is hand-authored once at
// process start; ids, groups, and ordering are stable product decisions.
package action

// ID is the closed enumeration of lifecycle command identifiers. Adding an
// action means adding a constant here and extending the exhaustive switches in
// the eligibility engine and the batch executor dispatcher.
type ID string

const (
	Publish         ID = "publish"
	Unpublish       ID = "unpublish"
	Archive         ID = "archive"
	RestoreArchive  ID = "restore_archive"
	Approve         ID = "approve"
	MarkPending     ID = "mark_pending"
	Reject          ID = "reject"
	MetadataAdd     ID = "metadata_add"
	MetadataReplace ID = "metadata_replace"
	MetadataClear   ID = "metadata_clear"
	SoftDelete      ID = "soft_delete"
	RestoreTrash    ID = "restore_trash"
	ForceDelete     ID = "force_delete"
)

// GroupID identifies a catalog group by concern.
type GroupID string

const (
	GroupPublication GroupID = "publication"
	GroupArchive     GroupID = "archive"
	GroupApproval    GroupID = "approval"
	GroupMetadata    GroupID = "metadata"
	GroupTrash       GroupID = "trash"
)

// Tint marks the severity styling of an action in the dashboard.
type Tint string

const (
	TintWarning Tint = "warning"
	TintDanger  Tint = "danger"
)

// Action is one immutable lifecycle command definition.
type Action struct {
	ID         ID      `json:"id"`
	Group      GroupID `json:"group"`
	Label      string  `json:"label"`
	HelperText string  `json:"helperText,omitempty"`
	Tint       Tint    `json:"tint,omitempty"`
}

// Group is an ordered slice of actions sharing a concern. Presentation order
// within and across groups is the hand-authored catalog order.
type Group struct {
	ID      GroupID  `json:"id"`
	Label   string   `json:"label"`
	Actions []Action `json:"actions"`
}

// Valid reports whether id is a member of the closed action set.
func (id ID) Valid() bool {
	switch id {
	case Publish, Unpublish, Archive, RestoreArchive,
		Approve, MarkPending, Reject,
		MetadataAdd, MetadataReplace, MetadataClear,
		SoftDelete, RestoreTrash, ForceDelete:
		return true
	}
	return false
}

// IsMetadata reports whether id is one of the metadata rewrite actions, which
// short-circuit the bulk workflow and delegate to the metadata editor.
func (id ID) IsMetadata() bool {
	return id == MetadataAdd || id == MetadataReplace || id == MetadataClear
}

// IsLifecycle reports whether id is a lifecycle-changing action that renders a
// confirmation summary in the configure step.
func (id ID) IsLifecycle() bool {
	switch id {
	case Publish, Unpublish, Archive, RestoreArchive,
		Approve, MarkPending,
		SoftDelete, RestoreTrash, ForceDelete:
		return true
	}
	return false
}

// Catalog returns the default action catalog in presentation order. Callers
// receive a fresh slice on every call so filtering never mutates the source.
func Catalog() []Group {
	return []Group{
		{
			ID:    GroupPublication,
			Label: "Publication",
			Actions: []Action{
				{ID: Publish, Group: GroupPublication, Label: "Publish", HelperText: "Make selected items visible to end users"},
				{ID: Unpublish, Group: GroupPublication, Label: "Unpublish", HelperText: "Hide selected items from end users", Tint: TintWarning},
			},
		},
		{
			ID:    GroupArchive,
			Label: "Archive",
			Actions: []Action{
				{ID: Archive, Group: GroupArchive, Label: "Archive", HelperText: "Move selected items to the archive"},
				{ID: RestoreArchive, Group: GroupArchive, Label: "Restore from archive"},
			},
		},
		{
			ID:    GroupApproval,
			Label: "Approval",
			Actions: []Action{
				{ID: Approve, Group: GroupApproval, Label: "Approve"},
				{ID: MarkPending, Group: GroupApproval, Label: "Mark as pending"},
				{ID: Reject, Group: GroupApproval, Label: "Reject", HelperText: "Requires a rejection reason", Tint: TintWarning},
			},
		},
		{
			ID:    GroupMetadata,
			Label: "Metadata",
			Actions: []Action{
				{ID: MetadataAdd, Group: GroupMetadata, Label: "Add metadata"},
				{ID: MetadataReplace, Group: GroupMetadata, Label: "Replace metadata", Tint: TintWarning},
				{ID: MetadataClear, Group: GroupMetadata, Label: "Clear metadata", Tint: TintWarning},
			},
		},
		{
			ID:    GroupTrash,
			Label: "Trash",
			Actions: []Action{
				{ID: SoftDelete, Group: GroupTrash, Label: "Move to trash", Tint: TintWarning},
				{ID: RestoreTrash, Group: GroupTrash, Label: "Restore from trash"},
				{ID: ForceDelete, Group: GroupTrash, Label: "Delete permanently", HelperText: "Cannot be undone", Tint: TintDanger},
			},
		},
	}
}
