package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	orig := NewValidationError("Validation failed.", map[string]any{"name": []string{"too short"}})
	de := ToDomainError(orig)
	if de.Code != "VALIDATION_FAILED" || de.HTTPStatus != http.StatusBadRequest {
		t.Errorf("unexpected mapping: %+v", de)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	if de.Code != "NOT_FOUND" || de.HTTPStatus != http.StatusNotFound {
		t.Errorf("pgx.ErrNoRows should map to NOT_FOUND, got %+v", de)
	}
}

func TestToDomainErrorGeneric(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("generic error should map to INTERNAL_ERROR, got %+v", de)
	}
	if !errors.Is(de, de.Err) && de.Err == nil {
		t.Error("wrapped error lost")
	}
}
