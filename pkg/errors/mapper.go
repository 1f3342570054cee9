package errors

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Mapper maps domain errors to HTTP status codes
type Mapper struct {
	logger zerolog.Logger
}

// NewMapper creates a new error mapper
func NewMapper(logger zerolog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// MapErrorToHTTP maps an error to HTTP status code and message
func (m *Mapper) MapErrorToHTTP(err error) (int, string) {
	if err == nil {
		return fasthttp.StatusOK, ""
	}

	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		permissionErr *PermissionError
		databaseErr   *DatabaseError
	)

	switch {
	case errors.As(err, &validationErr):
		return fasthttp.StatusBadRequest, validationErr.Message
	case errors.As(err, &notFoundErr):
		return fasthttp.StatusNotFound, notFoundErr.Message
	case errors.As(err, &conflictErr):
		return fasthttp.StatusConflict, conflictErr.Message
	case errors.As(err, &permissionErr):
		return fasthttp.StatusForbidden, permissionErr.Message
	case errors.As(err, &databaseErr):
		m.logger.Error().Err(err).Msg("database error")
		return fasthttp.StatusInternalServerError, "internal server error"
	default:
		m.logger.Error().Err(err).Msg("unknown error")
		return fasthttp.StatusInternalServerError, "internal server error"
	}
}
