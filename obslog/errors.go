package obslog

import "errors"

// Configuration errors, returned (wrapped, for the exporter and level
// checks) by Config.Validate and therefore by NewObserver.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty. The
	// service name becomes the OTel resource attribute every span and
	// counter is tagged with, so it can't default to "unknown".
	ErrMissingServiceName = errors.New("obslog: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is not in [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("obslog: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("obslog: invalid tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("obslog: invalid metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("obslog: invalid log level")
)

// Runtime errors.
var (
	// ErrNilObserver indicates a nil Observer was provided.
	ErrNilObserver = errors.New("obslog: observer is nil")

	// ErrMissingToolName indicates ToolMeta.Name is empty; every
	// span, counter, and log line is keyed off the tool name, so a
	// blank one would collapse unrelated tool calls together.
	ErrMissingToolName = errors.New("obslog: tool name is required")
)

// Exporter errors.
var (
	// ErrEndpointNotConfigured indicates a required endpoint environment variable is not set.
	ErrEndpointNotConfigured = errors.New("obslog: endpoint not configured")
)

// Validation constants.
const (
	// MinSamplePct is the minimum valid sampling percentage.
	MinSamplePct = 0.0
	// MaxSamplePct is the maximum valid sampling percentage.
	MaxSamplePct = 1.0
)

// ValidTracingExporters lists valid tracing exporter names. "jaeger" is
// deliberately absent: Jaeger's native OTLP ingest is indistinguishable
// from "otlp" here, so a second name would just be an alias a deployer
// could get wrong; point a Jaeger collector at the otlp exporter instead.
var ValidTracingExporters = []string{"otlp", "stdout", "none", ""}

// ValidMetricsExporters lists valid metrics exporter names.
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

// ValidLogLevels lists valid log level names.
var ValidLogLevels = []string{"debug", "info", "warn", "error", ""}

// RedactedFields lists field keys that are automatically redacted in
// logs: API keys for upstream providers (exa_api_key), the params blob
// a tool call was invoked with (raw_params may embed the same), and the
// generic credential-shaped keys every tool handler might log by habit.
// isRedactedField in logger.go is the enforced copy of this list; keep
// the two in sync when adding a field here.
var RedactedFields = []string{
	"input",
	"inputs",
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
	"exa_api_key",
	"raw_params",
}
