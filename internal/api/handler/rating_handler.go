package handler

import (
	"errors"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/api/middleware"
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Rate 新闻评分
// @Summary 新闻评分
// @Description 对已发布新闻打 1-5 分，每人一次，不可修改
// @Tags 评分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "新闻 slug"
// @Param request body dto.RatingRequest true "评分"
// @Success 200 {object} response.Response{data=dto.RatingResult} "评分成功"
// @Failure 404 {object} response.ErrorResponse "新闻不存在"
// @Failure 409 {object} response.ErrorResponse "已评过分"
// @Router /news/{slug}/rating [post]
func (h *RatingHandler) Rate(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.ratingService.Rate(userID, slug, req.Rating)
	if err != nil {
		handleRatingError(c, err)
		return
	}

	response.OK(c, "评分成功", result)
}

func handleRatingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidRating):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAlreadyRated):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Rating operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
