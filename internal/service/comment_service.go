package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andela/ah-olympians/internal/dto"
	"github.com/andela/ah-olympians/internal/model"
	"github.com/andela/ah-olympians/internal/repository"
	"github.com/andela/ah-olympians/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deletedCommentBody replaces the text of a deactivated comment so the
// thread keeps its shape without exposing the original content.
const deletedCommentBody = "[comment deleted]"

type CommentService interface {
	CreateComment(ctx context.Context, userID uuid.UUID, slug, body string) (*dto.CommentResponse, error)
	ReplyComment(ctx context.Context, userID uuid.UUID, slug string, parentID uuid.UUID, body string) (*dto.CommentResponse, error)
	GetThread(ctx context.Context, slug string) ([]dto.CommentResponse, error)
	GetComment(ctx context.Context, slug string, commentID uuid.UUID) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID, body string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID) error

	// VoteComment casts, removes, or switches a like/dislike on a
	// comment. A matching existing vote is removed; a mismatched one
	// switches in place.
	VoteComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID, voteType string) (string, repository.ToggleOutcome, error)
}

type commentService struct {
	comments      repository.CommentRepository
	articles      repository.ArticleRepository
	profiles      repository.ProfileRepository
	engagements   repository.EngagementRepository
	notifications NotificationService
}

func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, profiles repository.ProfileRepository, engagements repository.EngagementRepository, notifications NotificationService) CommentService {
	return &commentService{
		comments:      comments,
		articles:      articles,
		profiles:      profiles,
		engagements:   engagements,
		notifications: notifications,
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID uuid.UUID, slug, body string) (*dto.CommentResponse, error) {
	profile, err := s.requireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ArticleID: article.ID,
		AuthorID:  userID,
		Body:      body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	var username string
	if profile.User != nil {
		username = profile.User.Username
	}
	s.notifications.NotifyFavoriters(ctx, article.ID, userID,
		fmt.Sprintf("%s commented on article: %s", username, article.Title),
		article.Slug)

	comment.Author = profile
	resp := s.commentResponse(ctx, comment, nil)
	return &resp, nil
}

func (s *commentService) ReplyComment(ctx context.Context, userID uuid.UUID, slug string, parentID uuid.UUID, body string) (*dto.CommentResponse, error) {
	profile, err := s.requireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	parent, err := s.comments.FindActive(ctx, article.ID, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, err
	}

	if parent.ParentID != nil {
		return nil, apperror.BadRequest("you can only reply to a top-level comment")
	}

	comment := &model.Comment{
		ArticleID: article.ID,
		ParentID:  &parent.ID,
		AuthorID:  userID,
		Body:      body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = profile
	resp := s.commentResponse(ctx, comment, nil)
	return &resp, nil
}

func (s *commentService) GetThread(ctx context.Context, slug string) ([]dto.CommentResponse, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindThread(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, s.commentResponse(ctx, &comments[i], comments[i].Subcomments))
	}
	return responses, nil
}

func (s *commentService) GetComment(ctx context.Context, slug string, commentID uuid.UUID) (*dto.CommentResponse, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.FindActive(ctx, article.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, err
	}

	replies, err := s.comments.FindReplies(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := s.commentResponse(ctx, comment, replies)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID, body string) (*dto.CommentResponse, error) {
	comment, err := s.ownComment(ctx, userID, slug, commentID, "you are not allowed to edit this comment")
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := s.commentResponse(ctx, comment, nil)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID) error {
	comment, err := s.ownComment(ctx, userID, slug, commentID, "you are not allowed to delete this comment")
	if err != nil {
		return err
	}

	comment.Active = false
	return s.comments.Update(ctx, comment)
}

func (s *commentService) VoteComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID, voteType string) (string, repository.ToggleOutcome, error) {
	if _, err := s.requireActiveProfile(ctx, userID); err != nil {
		return "", 0, err
	}

	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return "", 0, err
	}

	comment, err := s.comments.FindActive(ctx, article.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, apperror.NotFound("comment not found")
		}
		return "", 0, err
	}

	outcome, err := s.engagements.ToggleCommentVote(ctx, userID, comment.ID, voteType)
	if err != nil {
		return "", 0, err
	}

	var message string
	switch outcome {
	case repository.ToggleCreated:
		message = fmt.Sprintf("comment %sd", voteType)
	case repository.ToggleRemoved:
		message = fmt.Sprintf("undid %s on comment", voteType)
	default:
		message = fmt.Sprintf("changed vote to %s", voteType)
	}

	return message, outcome, nil
}

func (s *commentService) ownComment(ctx context.Context, userID uuid.UUID, slug string, commentID uuid.UUID, forbiddenMsg string) (*model.Comment, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.FindActive(ctx, article.ID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, apperror.Forbidden(forbiddenMsg)
	}

	return comment, nil
}

func (s *commentService) requireActiveProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Forbidden("you need an active profile to do this")
		}
		return nil, err
	}
	return profile, nil
}

func (s *commentService) findArticle(ctx context.Context, slug string) (*model.Article, error) {
	article, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, err
	}
	return article, nil
}

func (s *commentService) commentResponse(ctx context.Context, comment *model.Comment, subcomments []model.Comment) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:        comment.ID,
		Active:    comment.Active,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	if comment.Active {
		resp.Body = comment.Body
		if comment.Author != nil && comment.Author.User != nil {
			resp.Author = comment.Author.User.Username
		}
		resp.Likes, _ = s.engagements.CountCommentVotes(ctx, comment.ID, model.CommentVoteLike)
		resp.Dislikes, _ = s.engagements.CountCommentVotes(ctx, comment.ID, model.CommentVoteDislike)
	} else {
		resp.Body = deletedCommentBody
	}

	for i := range subcomments {
		resp.Subcomments = append(resp.Subcomments, s.commentResponse(ctx, &subcomments[i], nil))
	}

	return resp
}
