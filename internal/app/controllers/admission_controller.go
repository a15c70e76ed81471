package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/services"
	"github.com/yigit/campusadmit/internal/middleware"
)

// AdmissionService is what AdmissionController needs from the admission service
type AdmissionService interface {
	Submit(ctx context.Context, principal models.Principal, req *dto.CreateAdmissionRequest) (*services.AdmissionDetails, error)
	Transition(ctx context.Context, id int64, req *dto.UpdateStatusRequest) (*services.AdmissionDetails, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, principal models.Principal, id int64) (*services.AdmissionDetails, error)
	ListMine(ctx context.Context, principal models.Principal) ([]*services.AdmissionDetails, error)
	ListAll(ctx context.Context) ([]*services.AdmissionDetails, error)
}

// SimpleAdmissionService is what the enquiry endpoints need
type SimpleAdmissionService interface {
	Create(ctx context.Context, req *dto.CreateSimpleAdmissionRequest) (*models.SimpleAdmission, error)
	List(ctx context.Context) ([]*models.SimpleAdmission, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateStatusRequest) (*models.SimpleAdmission, error)
	Delete(ctx context.Context, id int64) error
}

// AdmissionController handles applications and public enquiries
type AdmissionController struct {
	admissionService AdmissionService
	simpleService    SimpleAdmissionService
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissionService AdmissionService, simpleService SimpleAdmissionService) *AdmissionController {
	return &AdmissionController{
		admissionService: admissionService,
		simpleService:    simpleService,
	}
}

func toResponse(d *services.AdmissionDetails) dto.AdmissionResponse {
	return dto.NewAdmissionResponse(d.Admission, d.User, d.Course)
}

func toResponses(details []*services.AdmissionDetails) []dto.AdmissionResponse {
	out := make([]dto.AdmissionResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toResponse(d))
	}
	return out
}

// Submit files an application for the caller
// @Summary Submit an application
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdmissionRequest true "Application form"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitAdmissionResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error, course inactive or full"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied for this course"
// @Router /admissions [post]
func (c *AdmissionController) Submit(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var req dto.CreateAdmissionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	details, err := c.admissionService.Submit(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Application submitted successfully", dto.SubmitAdmissionResponse{
		Admission:         toResponse(details),
		ApplicationNumber: details.Admission.ApplicationNumber,
	}))
}

// ListMine lists the caller's applications
// @Summary My applications
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdmissionResponse}
// @Router /admissions/my-applications [get]
func (c *AdmissionController) ListMine(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	details, err := c.admissionService.ListMine(ctx.Request.Context(), p)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toResponses(details)))
}

// ListAll lists every application
// @Summary All applications
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdmissionResponse}
// @Router /admissions/admin [get]
func (c *AdmissionController) ListAll(ctx *gin.Context) {
	details, err := c.admissionService.ListAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toResponses(details)))
}

// Get returns one application to its owner or an admin
// @Summary Get an application
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admission ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdmissionResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admissions/{id} [get]
func (c *AdmissionController) Get(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	details, err := c.admissionService.Get(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toResponse(details)))
}

// UpdateStatus moves an application to a new review status
// @Summary Review an application
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admission ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.AdmissionResponse}
// @Router /admissions/{id}/status [put]
func (c *AdmissionController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	details, err := c.admissionService.Transition(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application status updated successfully", toResponse(details)))
}

// Delete removes an application
// @Summary Delete an application
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admission ID"
// @Success 200 {object} dto.APIResponse
// @Router /admissions/{id} [delete]
func (c *AdmissionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.admissionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application deleted successfully", nil))
}

// CreateSimple stores a public enquiry
// @Summary Submit an admission enquiry
// @Tags admissions
// @Accept json
// @Produce json
// @Param request body dto.CreateSimpleAdmissionRequest true "Enquiry"
// @Success 201 {object} dto.APIResponse{data=models.SimpleAdmission}
// @Router /admissions/simple [post]
func (c *AdmissionController) CreateSimple(ctx *gin.Context) {
	var req dto.CreateSimpleAdmissionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admission, err := c.simpleService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Admission enquiry submitted successfully", admission))
}

// ListSimple lists public enquiries
// @Summary List admission enquiries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SimpleAdmission}
// @Router /admin/simple-admissions [get]
func (c *AdmissionController) ListSimple(ctx *gin.Context) {
	admissions, err := c.simpleService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(admissions))
}

// UpdateSimpleStatus reviews a public enquiry
// @Summary Review an admission enquiry
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.SimpleAdmission}
// @Router /admin/simple-admissions/{id}/status [put]
func (c *AdmissionController) UpdateSimpleStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admission, err := c.simpleService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(admission))
}

// DeleteSimple removes a public enquiry
// @Summary Delete an admission enquiry
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/simple-admissions/{id} [delete]
func (c *AdmissionController) DeleteSimple(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.simpleService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Admission enquiry deleted successfully", nil))
}
