package handlers

import (
	"errors"
	"net/http"

	"cartonera/internal/adapter/http/dto/request"
	"cartonera/internal/adapter/http/dto/response"
	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase"
	"cartonera/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CheckHandler struct {
	usecase usecase.ICheckUseCase
}

func NewCheckHandler(uc usecase.ICheckUseCase) *CheckHandler {
	return &CheckHandler{usecase: uc}
}

// List filters by ?status=, all checks when absent.
func (h *CheckHandler) List(c *gin.Context) {
	checks, err := h.usecase.List(c.Request.Context(), entities.CheckStatus(c.Query("status")))
	if err != nil {
		writeError(c, mapCheckError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChecks(checks))
}

func (h *CheckHandler) GetByID(c *gin.Context) {
	chk, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapCheckError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheck(chk))
}

// Move handles PATCH /checks/:id/:action for deposit, cash, endorse and reject.
func (h *CheckHandler) Move(c *gin.Context) {
	action := c.Param("action")
	target, ok := request.CheckActionStatus(action)
	if !ok {
		appErr := pkg.NewDomainErrorSimple("CHECK_ACTION_NOT_FOUND", "Unknown check action "+action, http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var req request.CheckActionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	chk, err := h.usecase.Move(c.Request.Context(), c.Param("id"), target, req.EndorsedTo, req.Notes)
	if err != nil {
		log.Info().Err(err).Str("check_id", c.Param("id")).Str("action", action).Msg("[check][handler] move failed")
		writeError(c, mapCheckError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheck(chk))
}

func mapCheckError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCheckNotFound):
		return pkg.NewDomainErrorSimple("CHECK_NOT_FOUND", "Check not found", http.StatusNotFound)
	default:
		return mapDomainError(err)
	}
}
