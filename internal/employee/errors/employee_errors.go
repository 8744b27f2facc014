package employeeerrors

import (
	"net/http"

	"go-emdir/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrNoEmployeeData = apperror.New(
		apperror.CodeNotFound,
		"No employee data available",
		http.StatusNotFound,
	)
	ErrUpstreamUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Employee directory is temporarily unavailable",
		http.StatusServiceUnavailable,
	)
)
