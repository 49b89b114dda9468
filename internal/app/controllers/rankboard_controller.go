package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/app/services"
	"github.com/peerlist/peerlist-backend/internal/middleware"
)

// RankboardController handles the cohort leaderboard.
type RankboardController struct {
	rankboardService *services.RankboardService
}

// NewRankboardController creates a new rankboard controller
func NewRankboardController(rankboardService *services.RankboardService) *RankboardController {
	return &RankboardController{rankboardService: rankboardService}
}

// GetRankboard returns the requester's cohort leaderboard
// @Summary Cohort rankboard
// @Description Returns the requester's cohort ranked by CGPA; only doubly-consented students appear
// @Tags rankboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.RankboardResponse} "Rankboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Analytics and rankboard consent required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rankboard [get]
func (c *RankboardController) GetRankboard(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	resp, err := c.rankboardService.GetRankboard(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
