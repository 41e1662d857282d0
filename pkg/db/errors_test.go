package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "postgres duplicate", err: pgDup, want: true},
		{name: "postgres duplicate wrapped", err: fmt.Errorf("create user: %w", pgDup), want: true},
		{name: "postgres matching constraint", err: pgDup, constraint: "users_email_key", want: true},
		{name: "postgres other constraint", err: pgDup, constraint: "stores_name_key", want: false},
		{name: "postgres other code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: users.email"), want: true},
		{name: "plain duplicate message", err: errors.New(`duplicate key value violates unique constraint "users_email_key"`), want: true},
		{name: "unrelated error", err: errors.New("connection reset"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v, %q) = %v, want %v", tc.err, tc.constraint, got, tc.want)
			}
		})
	}
}
