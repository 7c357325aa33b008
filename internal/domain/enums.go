package domain

// Field names an issue attribute in the host's write protocol.
type Field string

const (
	FieldStartDate Field = "start_date"
	FieldDueDate   Field = "due_date"
	FieldDoneRatio Field = "done_ratio"
	FieldAssignee  Field = "assigned_to_id"
	FieldParent    Field = "parent_issue_id"
)

// fieldOrder fixes the encoding order of patch fields.
var fieldOrder = []Field{FieldStartDate, FieldDueDate, FieldDoneRatio, FieldAssignee, FieldParent}

// ValidFields lists every field the engine may submit.
var ValidFields = map[Field]bool{
	FieldStartDate: true,
	FieldDueDate:   true,
	FieldDoneRatio: true,
	FieldAssignee:  true,
	FieldParent:    true,
}

// EditKind identifies the gesture or form that produced a write.
type EditKind string

const (
	EditMove      EditKind = "move"
	EditResize    EditKind = "resize"
	EditReparent  EditKind = "reparent"
	EditQuickEdit EditKind = "quick_edit"
)

// EditOutcome classifies how a write attempt ended.
type EditOutcome string

const (
	OutcomeApplied    EditOutcome = "applied"
	OutcomeFetch      EditOutcome = "fetch_failed"
	OutcomePermission EditOutcome = "permission_denied"
	OutcomeValidation EditOutcome = "validation_failed"
	OutcomeTransport  EditOutcome = "transport_failed"
	OutcomeAbandoned  EditOutcome = "abandoned"
)

// HeaderLayout is the persisted display mode of the date header.
type HeaderLayout string

const (
	LayoutStandard HeaderLayout = "standard"
	LayoutCompact  HeaderLayout = "compact"
)

// Compact reports whether the layout collapses the medium header band.
func (l HeaderLayout) Compact() bool { return l == LayoutCompact }
