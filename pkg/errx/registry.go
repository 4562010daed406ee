package errx

// RegistryEntry describes a registered category code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Category codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeMessaging   = "60000"
	CodeRouting     = "61000"
	CodeTransformer = "62000"
	CodeConnector   = "63000"
	CodeLifecycle   = "64000"
	CodeSecurity    = "65000"
	CodeCLI         = "68000"
	CodeConfig      = "69000"
)

const (
	DescMessaging   = "Messaging error"
	DescRouting     = "Routing error"
	DescTransformer = "Transformer error"
	DescConnector   = "Connector/transport error"
	DescLifecycle   = "Lifecycle error"
	DescSecurity    = "Security error"
	DescCLI         = "CLI error"
	DescConfig      = "Configuration error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeMessaging, Description: DescMessaging},
	{Code: CodeRouting, Description: DescRouting},
	{Code: CodeTransformer, Description: DescTransformer},
	{Code: CodeConnector, Description: DescConnector},
	{Code: CodeLifecycle, Description: DescLifecycle},
	{Code: CodeSecurity, Description: DescSecurity},
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeConfig, Description: DescConfig},
}

var registryMap = map[string]string{
	CodeMessaging:   DescMessaging,
	CodeRouting:     DescRouting,
	CodeTransformer: DescTransformer,
	CodeConnector:   DescConnector,
	CodeLifecycle:   DescLifecycle,
	CodeSecurity:    DescSecurity,
	CodeCLI:         DescCLI,
	CodeConfig:      DescConfig,
}

// ErrorRegistry returns the category registry in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given category code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
