// Package rule defines review rules and the built-in rule templates.
package rule

// Rule describes one review rule loaded from configuration. Rules are
// immutable once loaded; the planner and workers only read them.
type Rule struct {
	// Name is the human-readable rule name. It appears in reports but is
	// never shown to the model.
	Name string `toml:"name"`
	// Description is optional documentation for config readers.
	Description string `toml:"description,omitempty"`
	// Instruction is the full text the model receives for this rule.
	Instruction string `toml:"instruction"`
	// Scope holds glob patterns selecting the files this rule applies to.
	Scope []string `toml:"scope"`
	// Exclude holds glob patterns removed from the scope match.
	Exclude []string `toml:"exclude,omitempty"`
	// MaxFilesPerTask overrides the global chunk limit for this rule.
	// Lower it for rules that read many extra files, raise it for rules
	// that only scan the diff.
	MaxFilesPerTask *int `toml:"max_files_per_task,omitempty"`
	// Blocking rules force a non-zero exit when violated. Defaults to true
	// when omitted from config.
	Blocking *bool `toml:"blocking,omitempty"`
	// Tip is remediation guidance attached to the rule's violations.
	Tip string `toml:"tip,omitempty"`
	// Resources are supplementary context URIs (file://, skill://, sh://).
	Resources []string `toml:"resources,omitempty"`
}

// DefaultScope matches every changed file.
func DefaultScope() []string { return []string{"**/*"} }

// EffectiveMaxFiles returns the rule override or the global default.
func (r *Rule) EffectiveMaxFiles(globalMax int) int {
	if r.MaxFilesPerTask != nil && *r.MaxFilesPerTask > 0 {
		return *r.MaxFilesPerTask
	}
	return globalMax
}

// IsBlocking reports whether violations of this rule fail the run.
func (r *Rule) IsBlocking() bool {
	return r.Blocking == nil || *r.Blocking
}

// Normalize fills defaults the TOML decoder leaves zero-valued.
func (r *Rule) Normalize() {
	if len(r.Scope) == 0 {
		r.Scope = DefaultScope()
	}
}
