package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/middleware"
)

// ContactService is what ContactController needs from the contact service
type ContactService interface {
	Create(ctx context.Context, req *dto.CreateContactRequest) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
	Update(ctx context.Context, admin models.Principal, id int64, req *dto.UpdateContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// ContactController handles the contact form and its admin inbox
type ContactController struct {
	contactService ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// Create stores a contact request
// @Summary Send a contact request
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact form"
// @Success 201 {object} dto.APIResponse{data=models.Contact}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /contact [post]
func (c *ContactController) Create(ctx *gin.Context) {
	var req dto.CreateContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	contact, err := c.contactService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Message sent successfully", contact))
}

// List returns the contact inbox
// @Summary List contact requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Contact}
// @Router /admin/contacts [get]
func (c *ContactController) List(ctx *gin.Context) {
	contacts, err := c.contactService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(contacts))
}

// Update records status and response on a contact request
// @Summary Respond to a contact request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Status and response"
// @Success 200 {object} dto.APIResponse{data=models.Contact}
// @Router /admin/contacts/{id} [put]
func (c *ContactController) Update(ctx *gin.Context) {
	admin, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	contact, err := c.contactService.Update(ctx.Request.Context(), admin, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Contact updated successfully", contact))
}

// Delete removes a contact request
// @Summary Delete a contact request
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/contacts/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.contactService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Contact deleted successfully", nil))
}
