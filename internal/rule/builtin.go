package rule

func intPtr(n int) *int { return &n }

// NoCodeDuplication checks for substantial logic duplicated across files.
// It reads many extra files, so it gets a low per-task file limit.
func NoCodeDuplication() Rule {
	return Rule{
		Name:        "No Code Duplication",
		Description: "Prevent duplicate code across files",
		Instruction: `
Ensure modified content does not duplicate code from other files.
- If duplicating an existing function, the code should call that function instead.
- If duplicating a code block, a shared function should be extracted.

Ignore acceptable duplication:
- Trivial code (simple one-liners, common patterns like error handling)
- Test code and test utilities
- Similar but contextually different logic (e.g., different validation rules)
- Common patterns like builder methods, getters/setters
- Standard boilerplate (e.g., CLI argument parsing, config loading)
- Factory methods or templates that intentionally duplicate configuration

Focus on substantial logic duplication:
- Business logic duplicated across multiple files (>30 lines)
- Complex algorithms or calculations repeated
- Data transformation logic that's identical
`,
		Scope:           DefaultScope(),
		MaxFilesPerTask: intPtr(3),
		Tip:             "Extract common code into shared functions or modules.",
	}
}

// NoMagicNumbers rejects unexplained numeric literals in production code.
func NoMagicNumbers() Rule {
	return Rule{
		Name:        "No Magic Numbers",
		Description: "Prevent hardcoded numeric literals",
		Instruction: `
Reject unexplained numeric literals in production code.

Allowed numbers (not magic):
- 0, 1, -1 in common contexts (array indexing, loop increments, exit codes, boolean-like values)
- Numbers in test files
- Numbers in configuration files
- Numbers with nearby explanatory comments (within 3 lines)
- HTTP status codes (200, 404, etc.)
- Common time values with clear context (60 for seconds/minutes, 24 for hours, 1000 for milliseconds)
- Array/collection sizes in obvious contexts

Reject as magic numbers:
- Business logic constants without explanation (e.g., threshold values, multipliers, limits)
- Arbitrary timeouts or delays without context
- Numeric configuration values hardcoded in logic
- Calculation constants without explanation
`,
		Scope:           DefaultScope(),
		MaxFilesPerTask: intPtr(10),
		Tip:             "Define constants with descriptive names or add explanatory comments.",
	}
}

// NoHardcodedCredentials rejects credentials committed to code.
func NoHardcodedCredentials() Rule {
	return Rule{
		Name:        "No Hardcoded Credentials",
		Description: "Prevent credential leaks",
		Instruction: `
Reject hardcoded credentials in code.

Forbidden:
- API keys, tokens, secrets (e.g., "sk-...", "Bearer ...", actual secret values)
- Passwords or password hashes
- Private keys or certificates
- OAuth client secrets
- Database connection strings with credentials

Allowed:
- Placeholder/example values (e.g., "your-api-key", "sk-xxxxxx", "<API_KEY>")
- Environment variable names (e.g., "API_KEY", "DATABASE_URL")
- Public URLs and endpoints
- Email addresses and contact information
- Test/mock credentials in test files clearly marked as fake
- Documentation examples with obvious placeholders
`,
		Scope:           DefaultScope(),
		MaxFilesPerTask: intPtr(10),
		Tip: "Use environment variables or configuration files for credentials. " +
			"Replace real values with placeholders in examples.",
	}
}
