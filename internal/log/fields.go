package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldOwnerID     = "owner_id"
	FieldTxID        = "transaction_id"
	FieldKind        = "kind"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldCount       = "count"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentStore   = "store"
	ComponentSeed    = "seed"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpDelete    = "delete"
	OpList      = "list"
	OpDashboard = "dashboard"
	OpSeed      = "seed"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
