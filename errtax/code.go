package errtax

// Code is a discrete tag from a closed, numerically partitioned set of
// error identifiers. The numeric value encodes the category: the
// thousands digit groups Validation (1xxx), External-API (2xxx),
// Processing (3xxx), Configuration (4xxx), and Tool-Execution (5xxx).
type Code int

const (
	// Validation (1xxx) — malformed or missing tool input. Non-recoverable.
	ValidationFailed Code = 1000 + iota
	ValidationInvalidParam
	ValidationMissingParam
	ValidationSchemaMismatch
)

const (
	// External-API (2xxx) — failures from the guarded external endpoint.
	APIGeneric Code = 2000 + iota
	APIRateLimit
	APIAuth
	APITimeout
	APIServiceUnavailable
	APIInvalidResponse
)

const (
	// Processing (3xxx) — failures in the analytical computation itself.
	ProcessingFailed Code = 3000 + iota
	ProcessingInsufficientData
	ProcessingMemoryLimit
	ProcessingConvergenceFailed
	ProcessingTimeout
)

const (
	// Configuration (4xxx) — invalid or missing process configuration.
	ConfigInvalid Code = 4000 + iota
	ConfigMissing
)

const (
	// Tool-Execution (5xxx) — failures in the tool invocation shell itself.
	ToolNotFound Code = 5000 + iota
	ToolExecutionFailed
	ToolDependencyMissing
)

// Category identifies the fixed-prefix group a Code belongs to.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryValidation
	CategoryExternalAPI
	CategoryProcessing
	CategoryConfiguration
	CategoryToolExecution
)

// Category returns the category a code belongs to, derived from its
// numeric prefix.
func (c Code) Category() Category {
	switch {
	case c >= 1000 && c < 2000:
		return CategoryValidation
	case c >= 2000 && c < 3000:
		return CategoryExternalAPI
	case c >= 3000 && c < 4000:
		return CategoryProcessing
	case c >= 4000 && c < 5000:
		return CategoryConfiguration
	case c >= 5000 && c < 6000:
		return CategoryToolExecution
	default:
		return CategoryUnknown
	}
}

var codeNames = map[Code]string{
	ValidationFailed:         "VALIDATION_FAILED",
	ValidationInvalidParam:   "VALIDATION_INVALID_PARAM",
	ValidationMissingParam:   "VALIDATION_MISSING_PARAM",
	ValidationSchemaMismatch: "VALIDATION_SCHEMA_MISMATCH",

	APIGeneric:            "API_GENERIC",
	APIRateLimit:          "API_RATE_LIMIT",
	APIAuth:               "API_AUTH",
	APITimeout:            "API_TIMEOUT",
	APIServiceUnavailable: "API_SERVICE_UNAVAILABLE",
	APIInvalidResponse:    "API_INVALID_RESPONSE",

	ProcessingFailed:            "PROCESSING_FAILED",
	ProcessingInsufficientData:  "PROCESSING_INSUFFICIENT_DATA",
	ProcessingMemoryLimit:       "PROCESSING_MEMORY_LIMIT",
	ProcessingConvergenceFailed: "PROCESSING_CONVERGENCE_FAILED",
	ProcessingTimeout:           "PROCESSING_TIMEOUT",

	ConfigInvalid: "CONFIG_INVALID",
	ConfigMissing: "CONFIG_MISSING",

	ToolNotFound:          "TOOL_NOT_FOUND",
	ToolExecutionFailed:   "TOOL_EXECUTION_FAILED",
	ToolDependencyMissing: "TOOL_DEPENDENCY_MISSING",
}

var namesToCode map[string]Code

func init() {
	namesToCode = make(map[string]Code, len(codeNames))
	for code, name := range codeNames {
		namesToCode[name] = code
	}
}

// String returns the stable string identifier for the code, e.g.
// "API_RATE_LIMIT". Unknown codes return "UNKNOWN_ERROR".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN_ERROR"
}

// CodeFromString maps a stable string identifier back to a Code. Unknown
// identifiers map to ToolExecutionFailed with ok=false, so that callers
// crossing a process boundary (e.g. a persisted error envelope, or a tool
// protocol error object) always get a usable Code.
func CodeFromString(s string) (Code, bool) {
	if code, ok := namesToCode[s]; ok {
		return code, true
	}
	return ToolExecutionFailed, false
}

// defaultRecoverable returns the default recoverability for a code absent
// an explicit override, per the category rules in spec §4.1/§7:
//
//   - Validation: always non-recoverable.
//   - External-API: recoverable except Auth and InvalidResponse.
//   - Processing: non-recoverable except Timeout (transient).
//   - Configuration: always non-recoverable.
//   - Tool-Execution: non-recoverable by default.
func defaultRecoverable(c Code) bool {
	switch c.Category() {
	case CategoryExternalAPI:
		return c != APIAuth && c != APIInvalidResponse
	case CategoryProcessing:
		return c == ProcessingTimeout
	default:
		return false
	}
}
