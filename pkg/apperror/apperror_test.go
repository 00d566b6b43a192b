package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, Code(New(CodeNotFound, "product not found")))
	assert.Equal(t, CodeInternal, Code(errors.New("connection reset")))

	wrapped := fmt.Errorf("handling request: %w", New(CodeInvalidState, "cart is empty"))
	assert.Equal(t, CodeInvalidState, Code(wrapped))
}

func TestMessage_SuppressesInternalDetail(t *testing.T) {
	assert.Equal(t, "cart is empty", Message(New(CodeInvalidState, "cart is empty")))
	assert.Equal(t, "internal server error", Message(errors.New("pq: relation does not exist")))
	assert.Equal(t, "internal server error", Message(Wrap(errors.New("boom"), CodeInternal, "query failed")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(CodeInvalid, "missing productId")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(CodeInvalidState, "cart is empty")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(New(CodeNotFound, "no such order")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(New(CodeConflict, "email taken")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(New(CodeUnauthorized, "bad token")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(New(CodeForbidden, "admin only")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything else")))
}
