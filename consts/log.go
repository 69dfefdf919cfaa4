package consts

const (
	LogFieldParams    = "params"
	LogFieldValue     = "value"
	LogFieldOp        = "op"
	LogFieldEntry     = "entry"
	LogFieldPath      = "path"
	LogFieldComponent = "component"

	ComponentDirectory = "directory"
	ComponentMenu      = "menu"
	ComponentMetrics   = "metrics"
)
