package handler

import (
	"net/http"

	"backoffice/internal/dto"
	"backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type ExceptionHandler struct {
	Service *service.ExceptionService
}

func NewExceptionHandler(svc *service.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{Service: svc}
}

func (h *ExceptionHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	records, total, err := h.Service.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	data := make([]dto.ExceptionSummaryResponse, 0, len(records))
	for i := range records {
		data = append(data, dto.ExceptionSummaryFromEntity(&records[i]))
	}
	return c.JSON(http.StatusOK, dto.ExceptionListResponse{
		Data:   data,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *ExceptionHandler) Show(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	record, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ExceptionResponseFromEntity(record))
}

func (h *ExceptionHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
