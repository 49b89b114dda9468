package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerlist/peerlist-backend/internal/app/models/dto"
	"github.com/peerlist/peerlist-backend/internal/app/services"
	"github.com/peerlist/peerlist-backend/internal/middleware"
)

// MeController handles the authenticated student's own surface: dashboard,
// imports, settings, export and deletion.
type MeController struct {
	resultsService *services.ResultsService
	consentService *services.ConsentService
	accountService *services.AccountService
}

// NewMeController creates a new me controller
func NewMeController(resultsService *services.ResultsService, consentService *services.ConsentService, accountService *services.AccountService) *MeController {
	return &MeController{
		resultsService: resultsService,
		consentService: consentService,
		accountService: accountService,
	}
}

// GetDashboard returns the student's own metrics
// @Summary Own dashboard
// @Description Returns the authenticated student's profile with per-semester and overall metrics
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/dashboard [get]
func (c *MeController) GetDashboard(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	resp, err := c.resultsService.GetDashboard(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ImportSemester stores one semester's results
// @Summary Import semester results
// @Description Imports one semester's normalized score records for the authenticated student
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportSemesterRequest true "Semester results"
// @Success 201 {object} dto.APIResponse{data=dto.ImportSemesterResponse} "Semester imported successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Semester already imported"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/results [post]
func (c *MeController) ImportSemester(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ImportSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	resp, err := c.resultsService.ImportSemester(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetSettings returns consent state and history
// @Summary Get settings
// @Description Returns the authenticated student's consent state and append-only consent history
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse} "Settings retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/settings [get]
func (c *MeController) GetSettings(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	resp, err := c.consentService.GetSettings(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateConsent applies a partial consent change
// @Summary Update consent settings
// @Description Atomically updates the provided consent flags and display mode; absent fields are untouched
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateConsentRequest true "Consent changes"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Consent updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/consent [put]
func (c *MeController) UpdateConsent(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateConsentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	student, err := c.consentService.UpdateConsent(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// ExportData returns the full data-portability document
// @Summary Export own data
// @Description Returns everything the platform holds about the authenticated student as one JSON document
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ExportDocument} "Export generated successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/export [get]
func (c *MeController) ExportData(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	doc, err := c.accountService.ExportData(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="peerlist-export.json"`)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(doc))
}

// DeleteAccount erases the account after confirmation
// @Summary Delete account
// @Description Irreversibly erases the authenticated student's account after enrollment number confirmation
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteAccountRequest true "Deletion confirmation"
// @Success 204 "Account deleted"
// @Failure 400 {object} dto.ErrorResponse "Confirmation mismatch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me [delete]
func (c *MeController) DeleteAccount(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	if err := c.accountService.DeleteAccount(ctx, studentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondUnauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
