package warehouse

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain identifier", input: "BMI_FEATURES_V1", wantErr: false},
		{name: "leading underscore", input: "_STAGING", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "embedded space", input: "BMI FEATURES", wantErr: true},
		{name: "quote injection", input: `BMI"; DROP TABLE X`, wantErr: true},
		{name: "leading digit", input: "1BMI", wantErr: true},
		{name: "semicolon", input: "BMI;", wantErr: true},
		{name: "too long", input: strings.Repeat("A", 256), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQueryText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple select", input: "SELECT * FROM codes", wantErr: false},
		{name: "trailing semicolon allowed", input: "SELECT 1;", wantErr: false},
		{name: "empty", input: "   ", wantErr: true},
		{name: "spliced statement", input: "SELECT 1; DROP TABLE codes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQueryText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQueryText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestQuoteLiteral(t *testing.T) {
	if got := QuoteLiteral("4 hours"); got != "'4 hours'" {
		t.Errorf("QuoteLiteral plain = %q", got)
	}
	if got := QuoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("QuoteLiteral quote = %q", got)
	}
}

func TestCreateTableAs(t *testing.T) {
	got, err := CreateTableAs("BMI_FEATURES_V1", "SELECT * FROM observations;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "CREATE TABLE BMI_FEATURES_V1 AS SELECT * FROM observations"
	if got != want {
		t.Errorf("CreateTableAs = %q, want %q", got, want)
	}

	if _, err := CreateTableAs("bad name", "SELECT 1"); err == nil {
		t.Error("expected error for invalid table identifier")
	}
	if _, err := CreateTableAs("T", "SELECT 1; DROP TABLE T"); err == nil {
		t.Error("expected error for spliced query")
	}
}

func TestCreateRefreshedTableAs(t *testing.T) {
	got, err := CreateRefreshedTableAs("VITALS_V2", "SELECT * FROM vitals", "4 hours")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "CREATE DYNAMIC TABLE VITALS_V2 TARGET_LAG = '4 hours' AS SELECT * FROM vitals"
	if got != want {
		t.Errorf("CreateRefreshedTableAs = %q, want %q", got, want)
	}

	if _, err := CreateRefreshedTableAs("VITALS_V2", "SELECT 1", " "); err == nil {
		t.Error("expected error for empty refresh policy")
	}
}

func TestDropAndSuspend(t *testing.T) {
	drop, err := DropTable("VITALS_V1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if drop != "DROP TABLE IF EXISTS VITALS_V1" {
		t.Errorf("DropTable = %q", drop)
	}

	susp, err := SuspendTable("VITALS_V1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if susp != "ALTER DYNAMIC TABLE VITALS_V1 SUSPEND" {
		t.Errorf("SuspendTable = %q", susp)
	}

	if _, err := DropTable("VITALS;--"); err == nil {
		t.Error("expected error for invalid identifier")
	}
}
