package db

import (
	"strings"
	"testing"
)

func TestInitPostgres_UnreachableDatabase(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
	}{
		{"malformed options", "some=random"},
		{"empty DSN", ""},
		{"connection refused", "host=127.0.0.1 port=1 user=bloglist dbname=bloglist sslmode=disable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, err := InitPostgres(tc.dsn)
			if err == nil {
				conn.Close()
				t.Fatalf("InitPostgres(%q) did not return error", tc.dsn)
			}
			// lib/pq defers DSN validation and dialing to the first
			// round trip, so every bad DSN surfaces at the ping.
			if !strings.Contains(err.Error(), "ping postgres") {
				t.Errorf("InitPostgres(%q) error = %q; want ping failure", tc.dsn, err.Error())
			}
		})
	}
}

func TestSchema_DeclaresCatalogueTables(t *testing.T) {
	wantClauses := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS blogs",
		// The owned-blog list lives on the user row as an ordered array.
		"blogs TEXT[] NOT NULL DEFAULT '{}'",
		// Every blog row points back at its owning user.
		"owner TEXT NOT NULL REFERENCES users(id)",
		"username TEXT NOT NULL UNIQUE",
	}
	for _, clause := range wantClauses {
		if !strings.Contains(schema, clause) {
			t.Errorf("schema missing clause %q", clause)
		}
	}
}
