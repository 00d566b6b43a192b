package apperror

import "net/http"

// HTTPStatus maps a taxonomy code to its fixed response status.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeInvalid, CodeInvalidState:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
