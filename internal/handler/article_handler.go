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

type ArticleHandler struct {
	articles service.ArticleService
}

func NewArticleHandler(articles service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.articles.CreateArticle(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "article", resp)
}

func (h *ArticleHandler) ListArticles(c *gin.Context) {
	resp, err := h.articles.ListArticles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "articles", resp)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	resp, err := h.articles.GetArticle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "article", resp)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.articles.UpdateArticle(c.Request.Context(), userID, c.Param("slug"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "article", resp)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.articles.DeleteArticle(c.Request.Context(), userID, c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "article deleted")
}

func (h *ArticleHandler) UploadImage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperror.BadRequest("image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.BadRequest("could not read image file"))
		return
	}
	defer file.Close()

	resp, err := h.articles.UploadImage(c.Request.Context(), userID, c.Param("slug"), file, fileHeader.Filename, c.PostForm("description"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusCreated, "image", resp)
}

func (h *ArticleHandler) Search(c *gin.Context) {
	var filter dto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	resp, err := h.articles.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Data(c, http.StatusOK, "articles", resp)
}
