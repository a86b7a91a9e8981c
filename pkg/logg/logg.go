package logg

// Field keys shared by every zap logger in the module.
const (
	Layer     = "layer"
	Operation = "operation"
	Action    = "action"
	Locator   = "locator"
	URL       = "url"
	SessionID = "session_id"
	RunID     = "run_id"
	Scenario  = "scenario"
	Step      = "step"
	Elapsed   = "elapsed"
)
