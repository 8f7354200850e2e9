package warehouse

import (
	"fmt"
	"strings"
)

// NormalizeFeatureName canonicalizes a user-supplied feature name: trimmed,
// upper-cased, internal spaces collapsed to underscores. Two names that
// normalize to the same string are the same feature.
func NormalizeFeatureName(name string) string {
	n := strings.TrimSpace(name)
	n = strings.Join(strings.Fields(n), "_")
	return strings.ToUpper(n)
}

// TableName derives the physical table identifier for a feature version.
// Deterministic; distinct (name, version) pairs never map to the same
// identifier (the version is always the final "_V{n}" segment).
func TableName(featureName string, version int) string {
	return fmt.Sprintf("%s_V%d", NormalizeFeatureName(featureName), version)
}
