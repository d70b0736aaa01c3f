package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/form"
	"backoffice/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrEmailTaken, http.StatusUnprocessableEntity},
		{fmt.Errorf("update: %w", service.ErrInvalidInput), http.StatusUnprocessableEntity},
		{service.ErrCurrentPassword, http.StatusUnprocessableEntity},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrProtectedRole, http.StatusForbidden},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrExceptionNotFound, http.StatusNotFound},
		{service.ErrMFANotStarted, http.StatusConflict},
		{service.ErrSessionLocked, http.StatusLocked},
		{service.ErrMFANotConfigured, http.StatusFailedDependency},
	}
	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			assert.NoError(t, writeServiceError(c, tc.err))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestWriteServiceError_UnknownErrorIsReturned(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	storageErr := errors.New("connection refused")

	assert.ErrorIs(t, writeServiceError(c, storageErr), storageErr)
	assert.False(t, c.Response().Committed)
}

func TestResolveRoute(t *testing.T) {
	assert.Equal(t, "/admin/settings/users", resolveRoute(form.PostUpdateRedirectTarget()))
	assert.Equal(t, "admin.unknown", resolveRoute("admin.unknown"))
}

func TestParseLimitOffset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?limit=-3&offset=-1", nil), httptest.NewRecorder())

	limit, offset := parseLimitOffset(c)

	assert.Equal(t, defaultPageSize, limit)
	assert.Equal(t, 0, offset)
}
