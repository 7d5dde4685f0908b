package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pending := &pgconn.PgError{Code: "23505", ConstraintName: "reservations_pending_phone_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "other code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "any constraint", err: pending, want: true},
		{name: "matching constraint", err: pending, constraint: "reservations_pending_phone_key", want: true},
		{name: "other constraint", err: pending, constraint: "reservations_pkey", want: false},
		{name: "wrapped", err: fmt.Errorf("insert: %w", pending), constraint: "reservations_pending_phone_key", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
