package chaff

import "strings"

// FailurePrefix introduces an expected-failure directive line in a chaff
// document: "### Fails: TestName" declares that TestName is expected to
// fail for this chaff. Directives are metadata for reports only; they never
// affect compilation.
const FailurePrefix = "### Fails:"

// ExpectedFailures returns the trimmed test names declared by the
// document's failure directives, deduplicated, in first-seen order.
func ExpectedFailures(text string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, FailurePrefix) {
			continue
		}
		name := strings.TrimSpace(line[len(FailurePrefix):])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
