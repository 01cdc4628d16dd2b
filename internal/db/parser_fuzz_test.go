package db

import (
	"testing"
)

// FuzzParseConnectionString checks the parser never panics and that anything
// it accepts survives a build/parse cycle.
func FuzzParseConnectionString(f *testing.F) {
	f.Add("postgresql://monouser:monopass@db:5432/monolith")
	f.Add("postgresql://user@localhost/db")
	f.Add("postgres://localhost:5432/db")
	f.Add("postgresql://user:p@ss%20w0rd@localhost:5432/db?sslmode=require")
	f.Add("postgresql://user@localhost:5432/db?application_name=telemetry&connect_timeout=5")
	f.Add("postgresql://monouser@/monolith?host=%2Fvar%2Frun%2Fpostgresql&port=5432")
	f.Add("postgresql://[::1]:5432/monolith")
	f.Add("")
	f.Add("not-a-connection-string")
	f.Add("postgresql://")
	f.Add("postgresql://:@:/")
	f.Add("host=db port=5432")

	f.Fuzz(func(t *testing.T, connStr string) {
		config, err := ParseConnectionString(connStr)
		if err != nil {
			return
		}
		if config == nil {
			t.Fatal("nil config without error")
		}
		_ = BuildConnectionString(config)
		_ = RedactedConnectionString(config)
	})
}
