package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/forms"
	"github.com/deniz/careerhub/internal/app/services"
	"github.com/deniz/careerhub/internal/middleware"
	"github.com/deniz/careerhub/internal/pkg/flash"
)

// ProfileController lets students edit the skills and subjects that feed
// their recommendations.
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// Show renders the profile edit form pre-filled with the current values.
func (ctl *ProfileController) Show(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	profile, err := ctl.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "edit_profile.html", gin.H{
		"Form": forms.ProfileForm{
			Skills:           profile.Skills,
			EnrolledSubjects: profile.EnrolledSubjects,
		},
	})
}

// Update persists the submitted profile fields and returns to the listings.
func (ctl *ProfileController) Update(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var form forms.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "edit_profile.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	if _, err := ctl.profileService.Update(c.Request.Context(), userID, form.Skills, form.EnrolledSubjects); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	flash.Set(c, flash.Success, "Profile updated.")
	c.Redirect(http.StatusSeeOther, "/list/")
}
