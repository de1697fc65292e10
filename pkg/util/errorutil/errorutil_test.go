package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestNamedErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewNoActiveTerm(), "NO_ACTIVE_TERM", http.StatusUnprocessableEntity},
		{NewDuplicateRoomCode("R101"), "DUPLICATE_ROOM_CODE", http.StatusConflict},
		{NewRoomNotFound("R101"), "ROOM_NOT_FOUND", http.StatusNotFound},
		{NewRoomDeletionFailed("R101"), "ROOM_DELETION_FAILED", http.StatusNotFound},
		{NewStorageError(errors.New("boom")), "STORAGE_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr, tc.code)
		require.Equal(t, tc.code, domainErr.Code)
		require.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestRoomErrorsCarryCode(t *testing.T) {
	var domainErr *DomainError
	require.ErrorAs(t, NewDuplicateRoomCode("R101"), &domainErr)
	require.Equal(t, "R101", domainErr.Details["room_code"])
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewNoActiveTerm()
	converted := ToDomainError(original)
	require.Equal(t, "NO_ACTIVE_TERM", converted.Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", converted.Code)
	require.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection reset")
	converted := ToDomainError(cause)
	require.Equal(t, "STORAGE_ERROR", converted.Code)
	require.ErrorIs(t, converted, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("timeout")
	err := NewStorageError(cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "storage operation failed")
}
