package dto

import (
	"encoding/json"
	"time"

	"backoffice/internal/entity"

	"github.com/google/uuid"
)

type ExceptionSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ExceptionResponse struct {
	ExceptionSummaryResponse
	Trace     string          `json:"trace"`
	IPAddress *string         `json:"ip_address"`
	UserID    *uuid.UUID      `json:"user_id"`
	Headers   json.RawMessage `json:"headers,omitempty"`
	Query     json.RawMessage `json:"query,omitempty"`
}

type ExceptionListResponse struct {
	Data   []ExceptionSummaryResponse `json:"data"`
	Total  int64                      `json:"total"`
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
}

func ExceptionSummaryFromEntity(record *entity.ExceptionRecord) ExceptionSummaryResponse {
	return ExceptionSummaryResponse{
		ID:        record.ID,
		Type:      record.Type,
		Message:   record.Message,
		Method:    record.Method,
		Path:      record.Path,
		Status:    record.Status,
		CreatedAt: record.CreatedAt,
	}
}

func ExceptionResponseFromEntity(record *entity.ExceptionRecord) ExceptionResponse {
	return ExceptionResponse{
		ExceptionSummaryResponse: ExceptionSummaryFromEntity(record),
		Trace:                    record.Trace,
		IPAddress:                record.IPAddress,
		UserID:                   record.UserID,
		Headers:                  json.RawMessage(record.Headers),
		Query:                    json.RawMessage(record.Query),
	}
}
