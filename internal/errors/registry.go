package errors

import "sort"

// Template describes a registered error code.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Runtime (E001-E019)

	"E001": {
		Category: CategoryRuntime,
		Message:  "Effect re-entered",
		Detail:   "An effect wrote a signal it depends on, which scheduled the same effect while it was still running. Move the write out of the effect or read the signal untracked.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Render pass failed",
		Detail:   "The renderer rejected the tree or patches produced by a render pass. The next pass will remount the full tree.",
	},

	// Config (E100-E119)

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "vcore.yaml or vcore.json could not be parsed.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   `log.level must be one of "debug", "info", "warn" or "error".`,
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid log format",
		Detail:   `log.format must be "text" or "json".`,
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid reentrancy policy",
		Detail:   `runtime.reentrancy must be "panic" or "skip".`,
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid metrics namespace",
		Detail:   "metrics.namespace must be a valid Prometheus name: letters, digits and underscores, not starting with a digit.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid trace exporter",
		Detail:   `tracing.exporter must be "stdout" or "none".`,
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No vcore.yaml, vcore.yml or vcore.json was found.",
	},

	// Document (E120-E139)

	"E120": {
		Category: CategoryDocument,
		Message:  "Invalid tree document",
		Detail:   "The document is not valid YAML or JSON.",
	},
	"E121": {
		Category: CategoryDocument,
		Message:  "Node has neither tag nor text",
		Detail:   `Every node must be an element with a "tag" key or a text node with a "text" key.`,
	},
	"E122": {
		Category: CategoryDocument,
		Message:  "Node has both tag and text",
		Detail:   "A node is either an element or a text node.",
	},
	"E123": {
		Category: CategoryDocument,
		Message:  "Invalid attributes",
		Detail:   `"attrs" must be a mapping of attribute names to scalar values.`,
	},
	"E124": {
		Category: CategoryDocument,
		Message:  "Invalid children",
		Detail:   `"children" must be a sequence of nodes.`,
	},
	"E125": {
		Category: CategoryDocument,
		Message:  "Duplicate attribute",
		Detail:   "An attribute name appears more than once on the same element.",
	},
	"E126": {
		Category: CategoryDocument,
		Message:  "Unknown node field",
		Detail:   `Nodes accept only "tag", "attrs", "children" and "text".`,
	},
	"E127": {
		Category: CategoryDocument,
		Message:  "Text node has children",
		Detail:   "Text nodes are leaves; only elements have attributes and children.",
	},

	// CLI (E140-E159)

	"E140": {
		Category: CategoryCLI,
		Message:  "File not readable",
		Detail:   "The input file does not exist or cannot be read.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Unsupported output format",
		Detail:   `--format must be "text", "json" or "yaml".`,
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Patches do not reproduce the target tree",
		Detail:   "Applying the computed patches to the old tree did not yield the new tree.",
	},
	"E143": {
		Category: CategoryCLI,
		Message:  "Invalid benchmark parameters",
		Detail:   "--items and --updates must be positive.",
	},
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template.
func Register(code string, t Template) {
	registry[code] = t
}
