package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/university/internal/pkg/apperrors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "courses_degree_id_fkey"}, apperrors.ErrConstraintViolation},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "course_students_pkey"}, apperrors.ErrConstraintViolation},
		{"undefined table", &pgconn.PgError{Code: "42P01", Message: `relation "degrees" does not exist`}, apperrors.ErrQuery},
		{"syntax", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "42601"}), apperrors.ErrQuery},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperrors.ErrConnection},
		{"already classified", apperrors.NewNotFoundError("gone"), apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err, "op")
			if !errors.Is(got, tt.want) {
				t.Fatalf("Classify() = %v, want kind %v", got, tt.want)
			}
		})
	}
}

func TestClassify_UnknownKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	got := Classify(cause, "seed")
	if !errors.Is(got, cause) {
		t.Fatalf("cause lost: %v", got)
	}
	for _, kind := range []error{apperrors.ErrConstraintViolation, apperrors.ErrQuery, apperrors.ErrConnection} {
		if errors.Is(got, kind) {
			t.Errorf("unexpected kind %v", kind)
		}
	}
	if got.Error() != "seed: boom" {
		t.Errorf("message = %q", got.Error())
	}
}

func TestClassify_Nil(t *testing.T) {
	if Classify(nil, "op") != nil {
		t.Fatal("nil error should stay nil")
	}
}

func TestConstraintHelpers(t *testing.T) {
	duplicate := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "course_students_pkey"})
	foreignKey := &pgconn.PgError{Code: "23503", ConstraintName: "courses_degree_id_fkey"}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"unique violation", IsUniqueViolation(duplicate), true},
		{"foreign key is not unique", IsUniqueViolation(foreignKey), false},
		{"foreign key", IsForeignKeyError(foreignKey), true},
		{"unique is not foreign key", IsForeignKeyError(duplicate), false},
		{"named constraint", IsDuplicateConstraintError(duplicate, "course_students_pkey"), true},
		{"other constraint", IsDuplicateConstraintError(duplicate, "other"), false},
		{"plain error", IsForeignKeyError(errors.New("boom")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
