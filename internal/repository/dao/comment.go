package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	EventID   uint      `gorm:"not null;index"`
	Event     Event     `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint      `gorm:"not null"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	ParentID  *uint     `gorm:"index"`
	Parent    *Comment  `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CommentLike struct {
	CommentID uint      `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Comment   Comment   `gorm:"constraint:OnDelete:CASCADE"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
}

// CommentWithCounts is a comment with its like and reply counters.
type CommentWithCounts struct {
	Comment
	LikesCount   int64
	RepliesCount int64
}

const commentCountsSelect = "comments.*, " +
	"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count, " +
	"(SELECT COUNT(*) FROM comments AS replies WHERE replies.parent_id = comments.id) AS replies_count"

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

func (d *CommentDAO) Insert(ctx context.Context, comment Comment) (Comment, error) {
	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(&comment).Error; err != nil {
		return Comment{}, err
	}

	return comment, nil
}

func (d *CommentDAO) FindByID(ctx context.Context, id uint) (CommentWithCounts, error) {
	var comment CommentWithCounts

	result := d.db.WithContext(ctx).Model(&Comment{}).
		Select(commentCountsSelect).
		Where("comments.id = ?", id).
		Take(&comment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CommentWithCounts{}, ErrCommentNotFound
		}

		return CommentWithCounts{}, result.Error
	}

	return comment, nil
}

// ListByEvent returns every comment of the event, replies included, newest first.
func (d *CommentDAO) ListByEvent(ctx context.Context, eventID uint, offset, limit int) ([]CommentWithCounts, int64, error) {
	return d.list(ctx, "comments.event_id = ?", eventID, offset, limit)
}

func (d *CommentDAO) ListReplies(ctx context.Context, parentID uint, offset, limit int) ([]CommentWithCounts, int64, error) {
	return d.list(ctx, "comments.parent_id = ?", parentID, offset, limit)
}

func (d *CommentDAO) list(ctx context.Context, where string, arg uint, offset, limit int) ([]CommentWithCounts, int64, error) {
	query := d.db.WithContext(ctx).Model(&Comment{}).Where(where, arg).Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var comments []CommentWithCounts
	err := query.Select(commentCountsSelect).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, count, nil
}

func (d *CommentDAO) UpdateContent(ctx context.Context, id uint, content string) error {
	result := d.db.WithContext(ctx).Model(&Comment{ID: id}).Updates(map[string]any{
		"content":    content,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (d *CommentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// ToggleLike removes the user's like if present and adds it otherwise. It returns whether
// the comment is now liked and the resulting like count.
func (d *CommentDAO) ToggleLike(ctx context.Context, commentID, userID uint) (bool, int64, error) {
	liked := false
	var count int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&CommentLike{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			liked = true
			like := CommentLike{CommentID: commentID, UserID: userID}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&like).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}
