package resource

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Class is the error taxonomy every store failure is translated into before
// it reaches the transport layer.
type Class int

const (
	ClassValidation Class = iota
	ClassNotFound
	ClassForbidden
	ClassRelationMissing
	ClassBadRequest
	ClassInternal
)

// Postgres SQLSTATE codes the classifier cares about.
const (
	pgInsufficientPrivilege = "42501"
	pgUndefinedTable        = "42P01"
	pgUndefinedColumn       = "42703"
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
)

// HTTPStatus maps a class to its transport status. Never 200 on failure.
func (c Class) HTTPStatus() int {
	switch c {
	case ClassValidation, ClassBadRequest, ClassRelationMissing:
		return http.StatusBadRequest
	case ClassNotFound:
		return http.StatusNotFound
	case ClassForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified store or validation failure. Message is safe to show
// to callers; the wrapped cause is for logs only.
type Error struct {
	Class      Class
	Message    string
	Details    map[string]string
	Suggestion string
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NotFoundError builds the 404 for a single-record miss.
func NotFoundError(singular string) *Error {
	return &Error{
		Class:   ClassNotFound,
		Message: fmt.Sprintf("%s not found", singular),
	}
}

// ValidationFailure reports every missing or invalid field at once.
func ValidationFailure(details map[string]string) *Error {
	return &Error{
		Class:   ClassValidation,
		Message: "validation failed",
		Details: details,
	}
}

// IsRelationMissing reports whether err is the schema-drift class the join
// fallback may retry: the relation is not registered with the ORM, or the
// joined table/column does not exist in the live database.
func IsRelationMissing(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrUnsupportedRelation) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn
	}
	return false
}

// Classify translates a raw store error into the taxonomy. singular is the
// resource display name, table its storage name (used in remediation hints).
// Classification keys off stable error codes, never message text.
func Classify(singular, table string, err error) *Error {
	if err == nil {
		return nil
	}

	// Already classified upstream.
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{
			Class:   ClassNotFound,
			Message: fmt.Sprintf("%s not found", singular),
			cause:   err,
		}
	}

	if IsRelationMissing(err) {
		return &Error{
			Class:   ClassRelationMissing,
			Message: fmt.Sprintf("a relation required by this %s query is missing", singular),
			cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege:
			return &Error{
				Class:      ClassForbidden,
				Message:    fmt.Sprintf("access to %s blocked by a security policy", table),
				Suggestion: fmt.Sprintf("review-rls-policy:%s", table),
				cause:      err,
			}
		case pgUniqueViolation:
			return &Error{
				Class:   ClassBadRequest,
				Message: fmt.Sprintf("a %s with these values already exists", singular),
				cause:   err,
			}
		case pgForeignKeyViolation:
			return &Error{
				Class:   ClassBadRequest,
				Message: fmt.Sprintf("a relation referenced by this %s does not exist", singular),
				cause:   err,
			}
		}
		// Any other store-reported error passes its message through.
		return &Error{
			Class:   ClassBadRequest,
			Message: pgErr.Message,
			cause:   err,
		}
	}

	return &Error{
		Class:   ClassInternal,
		Message: "internal server error",
		cause:   err,
	}
}
