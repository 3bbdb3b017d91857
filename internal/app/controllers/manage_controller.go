package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/forms"
	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/app/services"
	"github.com/deniz/careerhub/internal/middleware"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/flash"
)

// ManageController handles the lecturer dashboard: posting, editing,
// deleting opportunities and viewing their applicants. Every lookup is
// scoped to the signed-in lecturer, so other lecturers' postings read as
// not found.
type ManageController struct {
	opportunityService *services.OpportunityService
}

// NewManageController creates a new ManageController
func NewManageController(opportunityService *services.OpportunityService) *ManageController {
	return &ManageController{opportunityService: opportunityService}
}

// Index lists the lecturer's own postings, newest first.
func (ctl *ManageController) Index(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	opportunities, err := ctl.opportunityService.ListOwn(c.Request.Context(), lecturerID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "manage_opportunities.html", gin.H{
		"Opportunities": opportunities,
	})
}

// ShowCreate renders the empty posting form.
func (ctl *ManageController) ShowCreate(c *gin.Context) {
	render(c, http.StatusOK, "opportunity_form.html", gin.H{
		"Form":   forms.OpportunityForm{},
		"Action": "/manage/create/",
		"Title":  "Post Opportunity",
	})
}

// Create posts a new opportunity authored by the signed-in lecturer.
func (ctl *ManageController) Create(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	var form forms.OpportunityForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "opportunity_form.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
			"Action": "/manage/create/",
			"Title":  "Post Opportunity",
		})
		return
	}

	opp := &models.Opportunity{
		Company:     form.Company,
		RoleTitle:   form.RoleTitle,
		Deadline:    form.Deadline,
		Link:        form.Link,
		Description: form.Description,
	}
	if err := ctl.opportunityService.Create(c.Request.Context(), lecturerID, opp); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	flash.Set(c, flash.Success, "Opportunity posted successfully!")
	c.Redirect(http.StatusSeeOther, "/manage/")
}

// ShowEdit renders the posting form pre-filled with one of the lecturer's
// own postings.
func (ctl *ManageController) ShowEdit(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	id, ok := paramID(c)
	if !ok {
		middleware.HandlePageError(c, apperrors.ErrOpportunityNotFound)
		return
	}

	opp, err := ctl.opportunityService.GetOwn(c.Request.Context(), id, lecturerID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "opportunity_form.html", gin.H{
		"Form": forms.OpportunityForm{
			Company:     opp.Company,
			RoleTitle:   opp.RoleTitle,
			Deadline:    opp.Deadline,
			Link:        opp.Link,
			Description: opp.Description,
		},
		"Action": c.Request.URL.Path,
		"Title":  "Edit Opportunity",
	})
}

// Update edits one of the lecturer's own postings.
func (ctl *ManageController) Update(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	id, ok := paramID(c)
	if !ok {
		middleware.HandlePageError(c, apperrors.ErrOpportunityNotFound)
		return
	}

	var form forms.OpportunityForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "opportunity_form.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
			"Action": c.Request.URL.Path,
			"Title":  "Edit Opportunity",
		})
		return
	}

	opp := &models.Opportunity{
		ID:          id,
		Company:     form.Company,
		RoleTitle:   form.RoleTitle,
		Deadline:    form.Deadline,
		Link:        form.Link,
		Description: form.Description,
	}
	if err := ctl.opportunityService.Update(c.Request.Context(), lecturerID, opp); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	flash.Set(c, flash.Success, "Opportunity updated successfully!")
	c.Redirect(http.StatusSeeOther, "/manage/")
}

// ConfirmDelete renders the delete confirmation page for one of the
// lecturer's own postings.
func (ctl *ManageController) ConfirmDelete(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	id, ok := paramID(c)
	if !ok {
		middleware.HandlePageError(c, apperrors.ErrOpportunityNotFound)
		return
	}

	opp, err := ctl.opportunityService.GetOwn(c.Request.Context(), id, lecturerID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "delete_confirmation.html", gin.H{
		"Opportunity": opp,
	})
}

// Delete removes one of the lecturer's own postings.
func (ctl *ManageController) Delete(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	id, ok := paramID(c)
	if !ok {
		middleware.HandlePageError(c, apperrors.ErrOpportunityNotFound)
		return
	}

	if err := ctl.opportunityService.Delete(c.Request.Context(), id, lecturerID); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	flash.Set(c, flash.Success, "Opportunity deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/manage/")
}

// Applications lists everyone who applied to one of the lecturer's own
// postings.
func (ctl *ManageController) Applications(c *gin.Context) {
	lecturerID, _ := middleware.CurrentUserID(c)

	id, ok := paramID(c)
	if !ok {
		middleware.HandlePageError(c, apperrors.ErrOpportunityNotFound)
		return
	}

	opp, apps, err := ctl.opportunityService.Applications(c.Request.Context(), id, lecturerID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "view_applications.html", gin.H{
		"Opportunity":  opp,
		"Applications": apps,
	})
}
