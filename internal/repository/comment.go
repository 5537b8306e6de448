package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository/dao"
)

var ErrCommentNotFound = dao.ErrCommentNotFound

type CommentDAO interface {
	Insert(ctx context.Context, comment dao.Comment) (dao.Comment, error)
	FindByID(ctx context.Context, id uint) (dao.CommentWithCounts, error)
	ListByEvent(ctx context.Context, eventID uint, offset, limit int) ([]dao.CommentWithCounts, int64, error)
	ListReplies(ctx context.Context, parentID uint, offset, limit int) ([]dao.CommentWithCounts, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, commentID, userID uint) (bool, int64, error)
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	created, err := r.dao.Insert(ctx, dao.Comment{
		EventID:  comment.EventID,
		AuthorID: comment.AuthorID,
		ParentID: comment.ParentID,
		Content:  comment.Content,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(dao.CommentWithCounts{Comment: created}), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (domain.Comment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CommentRepository) ListByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Comment, int64, error) {
	comments, count, err := r.dao.ListByEvent(ctx, eventID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	return r.daosToDomain(comments), count, nil
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID uint, page domain.Page) ([]domain.Comment, int64, error) {
	comments, count, err := r.dao.ListReplies(ctx, parentID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListReplies -> %w", err)
	}

	return r.daosToDomain(comments), count, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id uint, content string) (domain.Comment, error) {
	if err := r.dao.UpdateContent(ctx, id, content); err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.UpdateContent -> %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID uint) (domain.LikeResult, error) {
	liked, count, err := r.dao.ToggleLike(ctx, commentID, userID)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("r.dao.ToggleLike -> %w", err)
	}

	status := domain.LikeStatusUnlike
	if liked {
		status = domain.LikeStatusLike
	}

	return domain.LikeResult{Status: status, LikesCount: count}, nil
}

func (r *CommentRepository) daoToDomain(c dao.CommentWithCounts) domain.Comment {
	return domain.Comment{
		ID:           c.ID,
		EventID:      c.EventID,
		AuthorID:     c.AuthorID,
		ParentID:     c.ParentID,
		Content:      c.Content,
		LikesCount:   c.LikesCount,
		RepliesCount: c.RepliesCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *CommentRepository) daosToDomain(comments []dao.CommentWithCounts) []domain.Comment {
	result := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		result = append(result, r.daoToDomain(c))
	}

	return result
}
