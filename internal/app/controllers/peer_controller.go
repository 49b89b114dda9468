package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/app/services"
	"github.com/peerlist/peerlist-backend/internal/middleware"
	"github.com/peerlist/peerlist-backend/internal/pkg/helpers"
)

// PeerController handles the consent-gated peer surface.
type PeerController struct {
	peerService *services.PeerService
}

// NewPeerController creates a new peer controller
func NewPeerController(peerService *services.PeerService) *PeerController {
	return &PeerController{peerService: peerService}
}

// GetDirectory lists opted-in cohort peers
// @Summary Peer directory
// @Description Lists the requester's cohort peers who share marks, with masked identities
// @Tags peers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PeerDirectoryResponse} "Directory retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Marks sharing opt-in required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /peers [get]
func (c *PeerController) GetDirectory(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	page, pageSize := helpers.ParsePagination(ctx)

	resp, err := c.peerService.GetDirectory(ctx, studentID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetPeerDashboard returns one peer's metrics under mutual consent
// @Summary Peer dashboard
// @Description Returns a peer's masked identity and full metrics when marks sharing is mutual
// @Tags peers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Peer student ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.PeerDashboardResponse} "Peer dashboard retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid peer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Consent is not mutual"
// @Failure 404 {object} dto.ErrorResponse "Peer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /peers/{id} [get]
func (c *PeerController) GetPeerDashboard(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	targetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid peer ID")
		errorDetail = errorDetail.WithDetails("ID must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.peerService.GetPeerDashboard(ctx, studentID, targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
