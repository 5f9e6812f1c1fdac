package handlers

import (
	"errors"
	"net/http"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase"
	"cartonera/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var kindStatus = map[entities.ErrorKind]int{
	entities.KindInvalidInput:           http.StatusBadRequest,
	entities.KindBelowMinimumSize:       http.StatusUnprocessableEntity,
	entities.KindBelowMinimumOrder:      http.StatusUnprocessableEntity,
	entities.KindInvalidState:           http.StatusConflict,
	entities.KindDepositRequired:        http.StatusConflict,
	entities.KindAlreadyConfirmed:       http.StatusConflict,
	entities.KindAlreadyConverted:       http.StatusConflict,
	entities.KindQuoteExpired:           http.StatusGone,
	entities.KindQuantitiesNotConfirmed: http.StatusConflict,
	entities.KindConcurrentModification: http.StatusConflict,
}

// mapDomainError covers failures every handler can see: typed domain rejections plus
// the use-case sentinels shared across aggregates.
func mapDomainError(err error) *pkg.AppError {
	if kind, ok := entities.KindOf(err); ok {
		status, known := kindStatus[kind]
		if !known {
			status = http.StatusBadRequest
		}
		return pkg.NewDomainError(string(kind), err.Error(), err, status).
			WithTransitions(entities.TransitionsOf(err))
	}
	switch {
	case errors.Is(err, usecase.ErrPricingConfigNotFound):
		return pkg.NewDomainErrorSimple("PRICING_CONFIG_NOT_FOUND", "No active pricing config", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(appErr).Str("path", c.FullPath()).Msg("[http][handler] request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func invalidRequest(c *gin.Context, err error) {
	log.Debug().Err(err).Str("path", c.FullPath()).Msg("[http][handler] invalid request body")
	appErr := pkg.NewDomainError("INVALID_REQUEST", "Invalid request: "+err.Error(), err, http.StatusBadRequest)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
