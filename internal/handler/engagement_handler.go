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

type EngagementHandler struct {
	engagements service.EngagementService
}

func NewEngagementHandler(engagements service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagements: engagements}
}

func (h *EngagementHandler) LikeArticle(c *gin.Context) {
	h.voteArticle(c, 1)
}

func (h *EngagementHandler) DislikeArticle(c *gin.Context) {
	h.voteArticle(c, -1)
}

func (h *EngagementHandler) voteArticle(c *gin.Context, value int) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, created, err := h.engagements.VoteArticle(c.Request.Context(), userID, c.Param("slug"), value)
	if err != nil {
		response.Error(c, err)
		return
	}

	code := http.StatusAccepted
	if created {
		code = http.StatusCreated
	}
	response.Message(c, code, message)
}

func (h *EngagementHandler) RateArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.engagements.RateArticle(c.Request.Context(), userID, c.Param("slug"), req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "rating", resp)
}

func (h *EngagementHandler) GetRating(c *gin.Context) {
	// Rating stats are public; an anonymous viewer just gets no
	// personal rating back.
	userID, _ := response.GetUserID(c)

	resp, err := h.engagements.GetRating(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "rating", resp)
}

func (h *EngagementHandler) DeleteRating(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.engagements.DeleteRating(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "rating", resp)
}

func (h *EngagementHandler) FavoriteArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.engagements.FavoriteArticle(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, message)
}

func (h *EngagementHandler) UnfavoriteArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.engagements.UnfavoriteArticle(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}

func (h *EngagementHandler) BookmarkArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.engagements.BookmarkArticle(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, message)
}

func (h *EngagementHandler) UnbookmarkArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, err := h.engagements.UnbookmarkArticle(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}

func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.engagements.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "bookmarks", resp)
}

func (h *EngagementHandler) ReportArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.engagements.ReportArticle(c.Request.Context(), userID, c.Param("slug"), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "report", resp)
}

func (h *EngagementHandler) ListReports(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.engagements.ListReports(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "reports", resp)
}

func (h *EngagementHandler) ListArticleReports(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.engagements.ListArticleReports(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "reports", resp)
}
