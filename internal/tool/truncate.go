package tool

import "fmt"

// DefaultNumChars is the default page size for paginated tool output.
const DefaultNumChars = 5000

// Paginate slices content by character range and appends a pagination hint
// when more remains, so the model can fetch the next page.
func Paginate(content string, start, length int) string {
	runes := []rune(content)
	total := len(runes)
	if start > total {
		start = total
	}
	if length <= 0 {
		length = DefaultNumChars
	}
	end := start + length
	if end > total {
		end = total
	}

	result := string(runes[start:end])
	if end < total {
		result += fmt.Sprintf("\n\n---\ntruncated [%d/%d chars]\nHint: Use start=%d to read more.", end, total, end)
	}
	return result
}
