package errors

import "net/http"

var (
	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Discovery session not found",
		http.StatusNotFound,
	)

	ErrSessionClosed = New(
		"SESSION_CLOSED",
		"Discovery session is closed",
		http.StatusGone,
	)

	ErrInvalidSessionID = New(
		"INVALID_SESSION_ID",
		"Invalid session ID",
		http.StatusBadRequest,
	)

	ErrUnknownCategory = New(
		"UNKNOWN_CATEGORY",
		"Category is not part of the loaded catalog",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCategoryID = New(
		"INVALID_CATEGORY_ID",
		"Invalid category ID",
		http.StatusBadRequest,
	)

	ErrInvalidPointID = New(
		"INVALID_POINT_ID",
		"Invalid point ID",
		http.StatusBadRequest,
	)

	ErrMarkerNotFound = New(
		"MARKER_NOT_FOUND",
		"No marker for this point in the current result",
		http.StatusNotFound,
	)

	ErrPointNotFound = New(
		"POINT_NOT_FOUND",
		"Collection point not found",
		http.StatusNotFound,
	)

	ErrCatalogUnavailable = New(
		"CATALOG_UNAVAILABLE",
		"Points catalog request failed",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
