// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN builds the Postgres connection string. Empty fields are omitted so the
// driver can fall back to its own defaults (peer auth has no password).
func (d *DatabaseConfig) DSN() string {
	parts := []string{
		fmt.Sprintf("host=%s", d.Host),
		fmt.Sprintf("port=%s", d.Port),
		fmt.Sprintf("user=%s", d.User),
	}
	if d.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", d.Password))
	}
	parts = append(parts,
		fmt.Sprintf("dbname=%s", d.Database),
		fmt.Sprintf("sslmode=%s", d.SSLMode),
		"TimeZone=Asia/Kolkata",
	)
	return strings.Join(parts, " ")
}
