package gitctx

import "strings"

// generatedPathFragments flag diffs that are large and rarely worth review.
var generatedPathFragments = []string{
	"-lock.json",
	".min.",
	"/dist/",
	"/build/",
	"/target/",
	"/.next/",
	"/node_modules/",
}

// IncludableDiff reports whether a file's diff should be embedded in the
// review prompt. Lock files and generated output are excluded; the diff tool
// can still fetch them with force_read.
func IncludableDiff(file string) bool {
	lower := strings.ToLower(file)

	if strings.HasSuffix(lower, ".lock") || strings.Contains(lower, "lock.") {
		return false
	}
	if strings.Contains(lower, "generated") {
		return false
	}
	for _, fragment := range generatedPathFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return true
}
