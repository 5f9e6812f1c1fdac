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

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	request.RegisterValidations()
	return &OrderHandler{usecase: uc}
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// TransitionStatus godoc
// @Summary      Move an order to another status
// @Description  Answers 409 with valid_transitions when the move is not allowed
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body request.OrderStatusRequest true "Target status"
// @Success      200 {object} response.OrderResponse
// @Failure      409 {object} pkg.HTTPError
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	var req request.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	orderID := c.Param("id")
	o, err := h.usecase.TransitionStatus(c.Request.Context(), orderID, entities.OrderStatus(req.Status), req.Notes)
	if err != nil {
		log.Info().Err(err).Str("order_id", orderID).Str("target", req.Status).Msg("[order][handler] transition failed")
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// RegisterPayment godoc
// @Summary      Register the deposit or the balance
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body request.PaymentRequest true "Payment"
// @Success      201 {object} response.RegisterPaymentResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      402 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Router       /orders/{id}/payments [post]
func (h *OrderHandler) RegisterPayment(c *gin.Context) {
	orderID := c.Param("id")
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	log.Info().Str("order_id", orderID).Str("payment_type", req.PaymentType).Str("method", req.Method).
		Msg("[payment][handler] register start")

	o, p, err := h.usecase.RegisterPayment(c.Request.Context(), orderID, req.ToInput())
	if err != nil {
		log.Info().Err(err).Str("order_id", orderID).Msg("[payment][handler] register failed")
		writeError(c, mapOrderError(err))
		return
	}
	log.Info().Str("order_id", orderID).Str("payment_id", p.ID).Str("status", string(p.Status)).
		Msg("[payment][handler] register success")
	c.JSON(http.StatusCreated, response.RegisterPaymentResponse{Order: response.FromOrder(o), Payment: response.FromPayment(p)})
}

func (h *OrderHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// ConfirmQuantities godoc
// @Summary      Confirm produced quantities and re-price the order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body request.ConfirmQuantitiesRequest true "Delivered quantities"
// @Success      200 {object} response.ConfirmQuantitiesResponse
// @Failure      409 {object} pkg.HTTPError
// @Router       /orders/{id}/confirm-quantities [post]
func (h *OrderHandler) ConfirmQuantities(c *gin.Context) {
	var req request.ConfirmQuantitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	o, rec, err := h.usecase.ConfirmQuantities(c.Request.Context(), c.Param("id"), req.ToDelivered())
	if err != nil {
		log.Info().Err(err).Str("order_id", c.Param("id")).Msg("[order][handler] confirm quantities failed")
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromConfirmation(o, rec))
}

// Dispatch godoc
// @Summary      Ship the order and issue its paperwork
// @Description  Paperwork failures come back in errors[] with a 200
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body request.DispatchRequest false "Vehicle and documents"
// @Success      200 {object} response.DispatchResponse
// @Failure      409 {object} pkg.HTTPError
// @Router       /orders/{id}/dispatch [post]
func (h *OrderHandler) Dispatch(c *gin.Context) {
	var req request.DispatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	res, err := h.usecase.Dispatch(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		log.Info().Err(err).Str("order_id", c.Param("id")).Msg("[order][handler] dispatch failed")
		writeError(c, mapOrderError(err))
		return
	}
	if len(res.Errors) > 0 {
		log.Warn().Strs("errors", res.Errors).Str("order_id", res.Order.ID).Msg("[order][handler] dispatched with paperwork errors")
	}
	c.JSON(http.StatusOK, response.FromDispatch(res))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainError("PAYMENT_NOT_APPROVED", err.Error(), err, http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Online payments are not available", http.StatusServiceUnavailable)
	default:
		return mapDomainError(err)
	}
}
