package warehouse

import (
	"testing"
)

func TestNormalizeFeatureName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already normalized",
			input: "BMI_FEATURES",
			want:  "BMI_FEATURES",
		},
		{
			name:  "lower case",
			input: "bmi_features",
			want:  "BMI_FEATURES",
		},
		{
			name:  "spaces become underscores",
			input: "bmi features",
			want:  "BMI_FEATURES",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  bmi features  ",
			want:  "BMI_FEATURES",
		},
		{
			name:  "repeated inner spaces collapse",
			input: "bmi   features",
			want:  "BMI_FEATURES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFeatureName(tt.input); got != tt.want {
				t.Errorf("NormalizeFeatureName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTableName(t *testing.T) {
	tests := []struct {
		name    string
		feature string
		version int
		want    string
	}{
		{
			name:    "first version",
			feature: "BMI_FEATURES",
			version: 1,
			want:    "BMI_FEATURES_V1",
		},
		{
			name:    "normalization applied",
			feature: " blood pressure ",
			version: 3,
			want:    "BLOOD_PRESSURE_V3",
		},
		{
			name:    "double digit version",
			feature: "hba1c",
			version: 12,
			want:    "HBA1C_V12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TableName(tt.feature, tt.version); got != tt.want {
				t.Errorf("TableName(%q, %d) = %q, want %q", tt.feature, tt.version, got, tt.want)
			}
		})
	}
}

func TestTableNameDistinctPairs(t *testing.T) {
	// Distinct (name, version) pairs must never share an identifier.
	seen := map[string]string{}
	pairs := []struct {
		feature string
		version int
	}{
		{"BMI", 1},
		{"BMI", 2},
		{"BMI_V1", 1},
		{"bmi features", 1},
		{"BMI_FEATURES", 1},
	}
	for _, p := range pairs {
		key := TableName(p.feature, p.version)
		id := NormalizeFeatureName(p.feature) + "#" + key
		if prev, ok := seen[key]; ok && prev != id {
			t.Errorf("collision: %q produced by both %s and %s", key, prev, id)
		}
		seen[key] = id
	}
}
