package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url form untouched", "postgres://u:p@localhost:5432/billing?sslmode=disable", "postgres://u:p@localhost:5432/billing?sslmode=disable"},
		{"quotes trimmed", `"postgres://u:p@localhost/billing"`, "postgres://u:p@localhost/billing"},
		{"kv gets sslmode", "host=localhost user=u dbname=billing", "host=localhost user=u dbname=billing sslmode=disable"},
		{"kv spaces collapsed", "host=localhost   user=u  dbname=billing sslmode=require", "host=localhost user=u dbname=billing sslmode=require"},
		{"sqlite untouched", "file:billing.db", "file:billing.db"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDSN(tt.in); got != tt.want {
				t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsSQLite(t *testing.T) {
	for dsn, want := range map[string]bool{
		"file:billing.db":         true,
		"billing.db":              true,
		":memory:":                true,
		"postgres://u@h/billing":  false,
		"host=localhost dbname=b": false,
	} {
		if got := IsSQLite(dsn); got != want {
			t.Errorf("IsSQLite(%q) = %v, want %v", dsn, got, want)
		}
	}
}
