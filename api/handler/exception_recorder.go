package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"backoffice/api/middleware"
	"backoffice/internal/entity"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var redactedHeaders = map[string]struct{}{
	"Authorization": {},
	"Cookie":        {},
	"Set-Cookie":    {},
}

type ExceptionStore interface {
	Record(ctx context.Context, record *entity.ExceptionRecord) error
}

// ExceptionRecorder wraps echo's error handler and stores every error that
// ends in a 5xx response for the exceptions browser.
type ExceptionRecorder struct {
	Store  ExceptionStore
	Next   echo.HTTPErrorHandler
	Logger logrus.FieldLogger
}

func (r *ExceptionRecorder) Handle(err error, c echo.Context) {
	if !c.Response().Committed && statusOf(err) >= http.StatusInternalServerError {
		r.record(err, c)
	}
	if r.Next != nil {
		r.Next(err, c)
	}
}

func (r *ExceptionRecorder) record(err error, c echo.Context) {
	if r.Store == nil {
		return
	}
	req := c.Request()
	record := &entity.ExceptionRecord{
		Type:      errorType(err),
		Message:   err.Error(),
		Trace:     errorChain(err),
		Method:    req.Method,
		Path:      req.URL.Path,
		Status:    statusOf(err),
		IPAddress: stringPtr(c.RealIP()),
		Headers:   toJSON(redactHeaders(req.Header)),
		Query:     toJSON(req.URL.Query()),
	}
	if userID, ok := middleware.UserIDFromContext(c); ok {
		record.UserID = &userID
	}

	ctx := context.WithoutCancel(req.Context())
	if storeErr := r.Store.Record(ctx, record); storeErr != nil && r.Logger != nil {
		r.Logger.WithError(storeErr).WithField("path", record.Path).Error("exception not recorded")
	}
}

func statusOf(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// errorType names the innermost error, which is usually the one that matters.
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

func errorChain(err error) string {
	var lines []string
	for current := err; current != nil; current = errors.Unwrap(current) {
		lines = append(lines, fmt.Sprintf("%T: %s", current, current.Error()))
	}
	return strings.Join(lines, "\n")
}

func redactHeaders(headers http.Header) http.Header {
	clean := make(http.Header, len(headers))
	for name, values := range headers {
		if _, ok := redactedHeaders[http.CanonicalHeaderKey(name)]; ok {
			clean[name] = []string{"[redacted]"}
			continue
		}
		clean[name] = values
	}
	return clean
}

func toJSON(value any) datatypes.JSON {
	bytes, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return datatypes.JSON(bytes)
}
