package handler

import (
	"net/http"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/service"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/response"
	"github.com/andela/ah-olympians/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.profiles.CreateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "profile", resp)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.profiles.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "profile", resp)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.profiles.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "profile", resp)
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	resp, err := h.profiles.ListProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "profiles", resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.profiles.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "profile", resp)
}

func (h *ProfileHandler) DeactivateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.profiles.DeactivateProfile(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "profile deactivated")
}

func (h *ProfileHandler) ReactivateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.profiles.ReactivateProfile(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "profile reactivated")
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, apperror.BadRequest("avatar file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.BadRequest("could not read avatar file"))
		return
	}
	defer file.Close()

	resp, err := h.profiles.UploadAvatar(c.Request.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "profile", resp)
}

type notifyPrefsRequest struct {
	EmailNotify *bool `json:"email_notify"`
	AppNotify   *bool `json:"in_app_notify"`
}

func (h *ProfileHandler) SetNotifyPrefs(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req notifyPrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.profiles.SetNotifyPrefs(c.Request.Context(), userID, req.EmailNotify, req.AppNotify)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "profile", resp)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.profiles.Follow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, message)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.profiles.Unfollow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}

func (h *ProfileHandler) Followers(c *gin.Context) {
	resp, err := h.profiles.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "followers", resp)
}

func (h *ProfileHandler) Following(c *gin.Context) {
	resp, err := h.profiles.Following(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "following", resp)
}
