package controllers

import (
	"easy-shop/models"
	"easy-shop/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedController struct {
	feeds *services.FeedService
}

func NewFeedController(feeds *services.FeedService) *FeedController {
	return &FeedController{feeds: feeds}
}

// @Summary News headlines
// @Tags Feeds
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Headline}
// @Failure 502 {object} models.ErrorResponse
// @Router /feeds/news [get]
func (ctrl *FeedController) GetNews(c *gin.Context) {
	headlines, err := ctrl.feeds.Headlines(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load news")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Headlines retrieved",
		Data:    headlines,
	})
}

// @Summary Currency exchange rates
// @Tags Feeds
// @Produce json
// @Param base query string false "Base currency" default(USD)
// @Success 200 {object} models.Response{data=models.ExchangeRates}
// @Failure 502 {object} models.ErrorResponse
// @Router /feeds/rates [get]
func (ctrl *FeedController) GetRates(c *gin.Context) {
	rates, err := ctrl.feeds.Rates(c.Request.Context(), c.DefaultQuery("base", "USD"))
	if err != nil {
		respondError(c, err, "Failed to load exchange rates")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Rates retrieved",
		Data:    rates,
	})
}
