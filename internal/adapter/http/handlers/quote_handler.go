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

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// Calculate godoc
// @Summary      Price a list of boxes
// @Description  Computes unfolded geometry, tier price, shipping and delivery date without storing anything
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body request.QuoteRequest true "Boxes and options"
// @Success      200 {object} response.CalculationResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      422 {object} pkg.HTTPError
// @Router       /quotes/calculate [post]
func (h *QuoteHandler) Calculate(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	priced, err := h.usecase.Calculate(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPricedQuote(priced))
}

// Create godoc
// @Summary      Create a draft quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body request.CreateQuoteRequest true "Client and boxes"
// @Success      201 {object} response.QuoteResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      422 {object} pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		log.Info().Err(err).Str("client_id", req.ClientID).Msg("[quote][handler] create failed")
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

func (h *QuoteHandler) GetByID(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func (h *QuoteHandler) Export(c *gin.Context) {
	name, content, err := h.usecase.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}

func (h *QuoteHandler) Send(c *gin.Context) {
	q, err := h.usecase.Send(c.Request.Context(), c.Param("id"))
	h.respond(c, "send", q, err)
}

func (h *QuoteHandler) Approve(c *gin.Context) {
	q, err := h.usecase.Approve(c.Request.Context(), c.Param("id"))
	h.respond(c, "approve", q, err)
}

func (h *QuoteHandler) Reject(c *gin.Context) {
	var req request.RejectQuoteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}
	q, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	h.respond(c, "reject", q, err)
}

func (h *QuoteHandler) respond(c *gin.Context, action string, q entities.Quote, err error) {
	if err != nil {
		log.Info().Err(err).Str("quote_id", c.Param("id")).Str("action", action).Msg("[quote][handler] transition failed")
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// Convert godoc
// @Summary      Convert an approved quote into an order
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID"
// @Success      201 {object} response.OrderResponse
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Router       /quotes/{id}/convert [post]
func (h *QuoteHandler) Convert(c *gin.Context) {
	o, err := h.usecase.Convert(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Info().Err(err).Str("quote_id", c.Param("id")).Msg("[quote][handler] convert failed")
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o))
}

// ExpireDue sweeps quotes past their validity. The background ticker calls the same
// use case; this route lets operators force a sweep.
func (h *QuoteHandler) ExpireDue(c *gin.Context) {
	expired, err := h.usecase.ExpireDue(c.Request.Context())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromExpiredQuotes(expired))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrExporterNotConfigured):
		return pkg.NewDomainErrorSimple("EXPORT_UNAVAILABLE", "Quote export is not available", http.StatusServiceUnavailable)
	default:
		return mapDomainError(err)
	}
}
