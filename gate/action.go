package gate

// Action describes the kind of operation an actor wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// Review actions used by the approval workflow.
	ActionValidate Action = "validate"
	ActionReject   Action = "reject"
)
