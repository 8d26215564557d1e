package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string

	// Explanation is the long-form text shown by Format when the error
	// carries no call-specific detail.
	Explanation string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Runtime errors (A001-A099)
	"A001": {
		Category:    CategoryRuntime,
		Message:     "Hook called outside of render",
		Explanation: "Hooks read and write the slots of the scope that is currently rendering. Outside of a render there is no such scope.",
	},
	"A002": {
		Category:    CategoryRuntime,
		Message:     "Hook slot type mismatch",
		Explanation: "Hook slots are addressed by call order. A slot written by one kind of hook was read back by another, which means the hook calls of this component changed order or type between renders.",
	},
	"A003": {
		Category:    CategoryRuntime,
		Message:     "Hook order changed",
		Explanation: "A component must call the same hooks in the same order on every render. Move conditional hook calls out of branches and loops.",
	},
	"A004": {
		Category:    CategoryRender,
		Message:     "Element params do not match component",
		Explanation: "An element was rendered with params whose type differs from the type the component was defined with.",
	},
	"A005": {
		Category:    CategoryRender,
		Message:     "Handle value type mismatch",
		Explanation: "A component provided a handle value whose type differs from the type the declaring caller asked for.",
	},

	// Configuration errors (C001-C099)
	"C001": {
		Category:    CategoryConfig,
		Message:     "Invalid configuration value",
		Explanation: "A field in arbor.yaml or arbor.json holds a value outside its allowed set.",
	},
	"C002": {
		Category:    CategoryConfig,
		Message:     "Configuration file could not be parsed",
		Explanation: "The configuration file is not valid YAML or JSON.",
	},
	"C003": {
		Category:    CategoryConfig,
		Message:     "Configuration file not found",
		Explanation: "The configuration file passed explicitly does not exist.",
	},

	// CLI errors (X001-X099)
	"X001": {
		Category:    CategoryCLI,
		Message:     "Command failed",
		Explanation: "The command could not complete. The cause below comes from the command line parser or from the component tree the command was driving.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
