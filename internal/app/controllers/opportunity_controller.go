package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/forms"
	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/app/services"
	"github.com/deniz/careerhub/internal/middleware"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/flash"
)

// OpportunityController handles the student-facing opportunity pages:
// listing with search and recommendations, the detail page, and the
// save/apply actions.
type OpportunityController struct {
	opportunityService *services.OpportunityService
	applicationService *services.ApplicationService
	profileService     *services.ProfileService
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(
	opportunityService *services.OpportunityService,
	applicationService *services.ApplicationService,
	profileService *services.ProfileService,
) *OpportunityController {
	return &OpportunityController{
		opportunityService: opportunityService,
		applicationService: applicationService,
		profileService:     profileService,
	}
}

// List renders the searchable opportunity listing with recommendations
func (ctl *OpportunityController) List(c *gin.Context) {
	query := c.Query("q")
	sort := models.ParseSort(c.Query("filter"))

	opportunities, err := ctl.opportunityService.List(c.Request.Context(), query, sort)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	// Recommendations come from the student's declared skills/subjects,
	// applied to the same capped page the listing shows.
	var recommendations []*models.Opportunity
	if userID, ok := middleware.CurrentUserID(c); ok {
		profile, err := ctl.profileService.Get(c.Request.Context(), userID)
		if err == nil {
			recommendations = services.Recommend(profile, opportunities)
		}
	}

	render(c, http.StatusOK, "opportunity_list.html", gin.H{
		"Opportunities":   opportunities,
		"Recommendations": recommendations,
		"Query":           query,
		"Filter":          string(sort),
	})
}

// Detail renders one opportunity with saved/applied status and the
// inline application form
func (ctl *OpportunityController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	opp, err := ctl.opportunityService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	saved, applied, err := ctl.applicationService.Status(c.Request.Context(), userID, id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "opportunity_detail.html", gin.H{
		"Opportunity": opp,
		"Saved":       saved,
		"Applied":     applied,
		"Form":        forms.ApplicationForm{},
	})
}

// SaveToggle flips the save state for the opportunity. POST only: a plain
// page view must never toggle.
func (ctl *OpportunityController) SaveToggle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	saved, err := ctl.applicationService.ToggleSave(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			flash.Set(c, flash.Error, "Student profile not found.")
			c.Redirect(http.StatusSeeOther, "/list/")
			return
		}
		middleware.HandlePageError(c, err)
		return
	}

	if saved {
		flash.Set(c, flash.Success, "Opportunity saved.")
	} else {
		flash.Set(c, flash.Success, "Opportunity removed from saved list.")
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/opportunity/%d/", id))
}

// Apply submits an application for the opportunity. The duplicate check
// short-circuits before the form is looked at.
func (ctl *OpportunityController) Apply(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	detailURL := fmt.Sprintf("/opportunity/%d/", id)
	userID, _ := middleware.CurrentUserID(c)

	applied, err := ctl.applicationService.HasApplied(c.Request.Context(), userID, id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	if applied {
		flash.Set(c, flash.Warning, "You already applied for this opportunity.")
		c.Redirect(http.StatusSeeOther, detailURL)
		return
	}

	var form forms.ApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Set(c, flash.Error, "There was an issue with your application.")
		c.Redirect(http.StatusSeeOther, detailURL)
		return
	}

	err = ctl.applicationService.Apply(c.Request.Context(), userID, id, form.Message)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyApplied):
			flash.Set(c, flash.Warning, "You already applied for this opportunity.")
			c.Redirect(http.StatusSeeOther, detailURL)
		case errors.Is(err, apperrors.ErrProfileNotFound):
			flash.Set(c, flash.Error, "Student profile not found.")
			c.Redirect(http.StatusSeeOther, "/list/")
		default:
			middleware.HandlePageError(c, err)
		}
		return
	}

	flash.Set(c, flash.Success, "Your application has been successfully submitted!")
	c.Redirect(http.StatusSeeOther, detailURL)
}
