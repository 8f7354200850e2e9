package warehouse

import (
	"fmt"
	"regexp"
	"strings"
)

// Every statement sent to the Engine is built here. Identifiers are
// validated against a strict pattern and free text (the defining query) is
// checked for statement splicing before interpolation; string literals have
// their quotes doubled.

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const maxIdentifierLength = 255

// ValidateIdentifier rejects anything that is not a plain SQL identifier.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier is empty")
	}
	if len(name) > maxIdentifierLength {
		return fmt.Errorf("identifier %q exceeds %d characters", name, maxIdentifierLength)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// ValidateQueryText rejects defining queries that would splice extra
// statements into the generated DDL. The query itself stays opaque.
func ValidateQueryText(query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return fmt.Errorf("defining query is empty")
	}
	if strings.Contains(strings.TrimSuffix(q, ";"), ";") {
		return fmt.Errorf("defining query must be a single statement")
	}
	return nil
}

// QuoteLiteral escapes a string for embedding as a SQL literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// CreateTableAs builds a plain materialization statement.
func CreateTableAs(table, query string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", err
	}
	if err := ValidateQueryText(query); err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE %s AS %s", table, strings.TrimSuffix(strings.TrimSpace(query), ";")), nil
}

// CreateRefreshedTableAs builds a continuously-refreshed materialization with
// a target-lag freshness policy. Only valid on engines that report
// SupportsRefreshPolicy.
func CreateRefreshedTableAs(table, query, targetLag string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", err
	}
	if err := ValidateQueryText(query); err != nil {
		return "", err
	}
	if strings.TrimSpace(targetLag) == "" {
		return "", fmt.Errorf("refresh policy is empty")
	}
	return fmt.Sprintf("CREATE DYNAMIC TABLE %s TARGET_LAG = %s AS %s",
		table, QuoteLiteral(strings.TrimSpace(targetLag)),
		strings.TrimSuffix(strings.TrimSpace(query), ";")), nil
}

// DropTable builds a drop statement. IF EXISTS keeps teardown idempotent.
func DropTable(table string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table), nil
}

// SuspendTable builds the statement that stops continuous refresh while
// keeping the last materialized rows. Only valid on engines that report
// SupportsSuspend.
func SuspendTable(table string) (string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER DYNAMIC TABLE %s SUSPEND", table), nil
}
