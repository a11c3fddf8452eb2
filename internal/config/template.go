package config

// FastTemplate is the init template for git hooks: a single cheap rule so a
// pre-push check stays quick.
const FastTemplate = `# warden configuration
# Run "warden review" to check changes against the rules below.

[llm]
provider = "openai"
model = "gpt-4o-mini"

[review]
# Files per worker task. Rules may override with max_files_per_task.
max_files_per_task = 5
# Limit concurrent workers. Remove for unlimited parallelism.
max_parallel_workers = 4

[[rules]]
name = "No Hardcoded Credentials"
instruction = """
Reject hardcoded credentials in code: API keys, tokens, passwords,
private keys, and connection strings with embedded secrets.
Placeholders, env var names, and clearly fake test values are fine.
"""
scope = ["**/*"]
exclude = ["**/testdata/**"]
max_files_per_task = 10
blocking = true
tip = "Use environment variables or configuration files for credentials."
`

// FullTemplate is the init template for CI: several rules, tracing-friendly.
const FullTemplate = FastTemplate + `
[[rules]]
name = "No Magic Numbers"
instruction = """
Reject unexplained numeric literals in production code. Allow 0, 1, -1,
HTTP status codes, obvious time values, and anything in tests or config.
"""
scope = ["**/*"]
exclude = ["**/*_test.go", "**/testdata/**"]
max_files_per_task = 10
blocking = false
tip = "Define constants with descriptive names or add explanatory comments."

[[rules]]
name = "No Code Duplication"
instruction = """
Ensure modified content does not duplicate substantial logic from other
files. Call the existing function or extract a shared one instead.
Ignore trivial snippets, tests, and intentional boilerplate.
"""
scope = ["**/*"]
max_files_per_task = 3
blocking = true
tip = "Extract common code into shared functions or modules."
`
