package handler

import (
	"net/http"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/internal/service"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/andela/ah-olympians/pkg/response"
	"github.com/andela/ah-olympians/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	comments service.CommentService
}

func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.comments.CreateComment(c.Request.Context(), userID, c.Param("slug"), req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "comment", resp)
}

func (h *CommentHandler) ReplyComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.comments.ReplyComment(c.Request.Context(), userID, c.Param("slug"), commentID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "comment", resp)
}

func (h *CommentHandler) GetThread(c *gin.Context) {
	resp, err := h.comments.GetThread(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "comments", resp)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, err := parseCommentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.comments.GetComment(c.Request.Context(), c.Param("slug"), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "comment", resp)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.comments.UpdateComment(c.Request.Context(), userID, c.Param("slug"), commentID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "comment", resp)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), userID, c.Param("slug"), commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "comment deleted")
}

func (h *CommentHandler) LikeComment(c *gin.Context) {
	h.voteComment(c, model.CommentVoteLike)
}

func (h *CommentHandler) DislikeComment(c *gin.Context) {
	h.voteComment(c, model.CommentVoteDislike)
}

func (h *CommentHandler) voteComment(c *gin.Context, voteType string) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	message, outcome, err := h.comments.VoteComment(c.Request.Context(), userID, c.Param("slug"), commentID, voteType)
	if err != nil {
		response.Error(c, err)
		return
	}

	code := http.StatusOK
	switch outcome {
	case repository.ToggleCreated:
		code = http.StatusCreated
	case repository.ToggleRemoved:
		code = http.StatusAccepted
	}

	response.Message(c, code, message)
}

func parseCommentID(c *gin.Context) (uuid.UUID, error) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("invalid comment id")
	}
	return commentID, nil
}
