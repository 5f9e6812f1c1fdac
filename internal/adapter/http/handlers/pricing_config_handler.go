package handlers

import (
	"net/http"

	"cartonera/internal/adapter/http/dto/request"
	"cartonera/internal/adapter/http/dto/response"
	"cartonera/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PricingConfigHandler struct {
	usecase usecase.IPricingConfigUseCase
}

func NewPricingConfigHandler(uc usecase.IPricingConfigUseCase) *PricingConfigHandler {
	return &PricingConfigHandler{usecase: uc}
}

func (h *PricingConfigHandler) GetActive(c *gin.Context) {
	cfg, err := h.usecase.GetActive(c.Request.Context())
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPricingConfig(cfg))
}

// Create stores a new version and makes it the active one.
func (h *PricingConfigHandler) Create(c *gin.Context) {
	var req request.PricingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	cfg, err := h.usecase.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		log.Info().Err(err).Msg("[pricing][handler] create failed")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().Str("pricing_config_id", cfg.ID).Int("version", cfg.Version).Msg("[pricing][handler] activated")
	c.JSON(http.StatusCreated, response.FromPricingConfig(cfg))
}
