package resource

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TestClassifyTable drives the classifier with the raw errors a store can
// produce and checks class, status and remediation hints.
func TestClassifyTable(t *testing.T) {
	cases := []struct {
		name           string
		err            error
		wantClass      Class
		wantStatus     int
		wantSuggestion string
	}{
		{
			name:       "record not found",
			err:        gorm.ErrRecordNotFound,
			wantClass:  ClassNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:           "insufficient privilege",
			err:            &pgconn.PgError{Code: "42501", Message: "permission denied"},
			wantClass:      ClassForbidden,
			wantStatus:     http.StatusForbidden,
			wantSuggestion: "review-rls-policy:leads",
		},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505", Message: "duplicate key"},
			wantClass:  ClassBadRequest,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: "23503", Message: "violates foreign key"},
			wantClass:  ClassBadRequest,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "undefined table",
			err:        &pgconn.PgError{Code: "42P01", Message: "relation does not exist"},
			wantClass:  ClassRelationMissing,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "undefined column",
			err:        &pgconn.PgError{Code: "42703", Message: "column does not exist"},
			wantClass:  ClassRelationMissing,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "other postgres error",
			err:        &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"},
			wantClass:  ClassBadRequest,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantClass:  ClassInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classified := Classify("Lead", "leads", tc.err)
			if classified.Class != tc.wantClass {
				t.Errorf("class = %v, want %v", classified.Class, tc.wantClass)
			}
			if got := classified.Class.HTTPStatus(); got != tc.wantStatus {
				t.Errorf("status = %d, want %d", got, tc.wantStatus)
			}
			if classified.Suggestion != tc.wantSuggestion {
				t.Errorf("suggestion = %q, want %q", classified.Suggestion, tc.wantSuggestion)
			}
		})
	}
}

// TestClassifyPassesThroughPostgresMessage verifies an unmapped SQLSTATE
// keeps the database's message for the caller.
func TestClassifyPassesThroughPostgresMessage(t *testing.T) {
	classified := Classify("Lead", "leads", &pgconn.PgError{
		Code:    "22P02",
		Message: "invalid input syntax for type uuid",
	})
	if classified.Message != "invalid input syntax for type uuid" {
		t.Errorf("message = %q, want database message", classified.Message)
	}
}

// TestClassifyInternalHidesDetail verifies unexpected errors never leak their
// text into the caller-facing message.
func TestClassifyInternalHidesDetail(t *testing.T) {
	classified := Classify("Lead", "leads", errors.New("dial tcp 10.0.0.5: timeout"))
	if classified.Message != "internal server error" {
		t.Errorf("message = %q, want generic", classified.Message)
	}
}

// TestClassifyIdempotent verifies an already-classified error is returned
// unchanged, including when wrapped.
func TestClassifyIdempotent(t *testing.T) {
	original := NotFoundError("Lead")
	wrapped := fmt.Errorf("loading lead: %w", original)

	classified := Classify("Lead", "leads", wrapped)
	if classified != original {
		t.Error("expected the original classified error back")
	}
}

// TestIsRelationMissing covers the exact error set the join fallback may
// retry on.
func TestIsRelationMissing(t *testing.T) {
	if !IsRelationMissing(gorm.ErrUnsupportedRelation) {
		t.Error("gorm.ErrUnsupportedRelation must be retryable")
	}
	if !IsRelationMissing(fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"})) {
		t.Error("wrapped undefined-table error must be retryable")
	}
	if IsRelationMissing(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation must not be retryable")
	}
	if IsRelationMissing(nil) {
		t.Error("nil is not retryable")
	}
}

// TestErrorUnwrap verifies the wrapped cause stays reachable for errors.Is.
func TestErrorUnwrap(t *testing.T) {
	classified := Classify("Lead", "leads", gorm.ErrRecordNotFound)
	if !errors.Is(classified, gorm.ErrRecordNotFound) {
		t.Error("expected errors.Is to see the wrapped cause")
	}
}
