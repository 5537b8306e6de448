package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/repository"
)

var (
	ErrCommentNotFound = repository.ErrCommentNotFound

	errParentNotFound = domain.NewValidationError("Invalid parent: object does not exist.")
)

type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	FindByID(ctx context.Context, id uint) (domain.Comment, error)
	ListByEvent(ctx context.Context, eventID uint, page domain.Page) ([]domain.Comment, int64, error)
	ListReplies(ctx context.Context, parentID uint, page domain.Page) ([]domain.Comment, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) (domain.Comment, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, commentID, userID uint) (domain.LikeResult, error)
}

type CommentEventFinder interface {
	Get(ctx context.Context, requesterID uint, ref string) (domain.Event, error)
	GetByID(ctx context.Context, requesterID, id uint) (domain.Event, error)
}

// CommentPublisher pushes new comments to live listeners of an event.
type CommentPublisher interface {
	Publish(comment domain.Comment)
}

type CommentService struct {
	repo      CommentRepository
	events    CommentEventFinder
	publisher CommentPublisher
	validator CommentValidator
}

func NewCommentService(repo CommentRepository, events CommentEventFinder, publisher CommentPublisher) *CommentService {
	return &CommentService{
		repo:      repo,
		events:    events,
		publisher: publisher,
	}
}

func (s *CommentService) Create(ctx context.Context, authorID, eventID uint, parentID *uint, content string) (domain.Comment, error) {
	if _, err := s.events.GetByID(ctx, authorID, eventID); err != nil {
		return domain.Comment{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	candidate := CommentCandidate{EventID: eventID, Content: content}
	if parentID != nil {
		parent, err := s.repo.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return domain.Comment{}, errParentNotFound
			}

			return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		candidate.Parent = &parent
	}

	trimmed, err := s.validator.Validate(candidate)
	if err != nil {
		return domain.Comment{}, err
	}

	created, err := s.repo.Create(ctx, domain.Comment{
		EventID:  eventID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  trimmed,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(created)
	}

	return created, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (domain.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, userID, id uint, content string) (domain.Comment, error) {
	if _, err := s.authored(ctx, userID, id); err != nil {
		return domain.Comment{}, err
	}

	trimmed, err := ValidateCommentContent(content)
	if err != nil {
		return domain.Comment{}, err
	}

	updated, err := s.repo.UpdateContent(ctx, id, trimmed)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.UpdateContent -> %w", err)
	}

	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.authored(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *CommentService) ToggleLike(ctx context.Context, userID, id uint) (domain.LikeResult, error) {
	if _, err := s.visibleComment(ctx, userID, id); err != nil {
		return domain.LikeResult{}, err
	}

	result, err := s.repo.ToggleLike(ctx, id, userID)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("s.repo.ToggleLike -> %w", err)
	}

	return result, nil
}

// ListByEvent returns the comments of an event the requester can see, replies included.
func (s *CommentService) ListByEvent(ctx context.Context, requesterID uint, eventRef string, page domain.Page) (domain.Paginated[domain.Comment], error) {
	event, err := s.events.Get(ctx, requesterID, eventRef)
	if err != nil {
		return domain.Paginated[domain.Comment]{}, fmt.Errorf("s.events.Get -> %w", err)
	}

	comments, count, err := s.repo.ListByEvent(ctx, event.ID, page)
	if err != nil {
		return domain.Paginated[domain.Comment]{}, fmt.Errorf("s.repo.ListByEvent -> %w", err)
	}

	return domain.NewPaginated(comments, count, page), nil
}

func (s *CommentService) Replies(ctx context.Context, requesterID, id uint, page domain.Page) (domain.Paginated[domain.Comment], error) {
	if _, err := s.visibleComment(ctx, requesterID, id); err != nil {
		return domain.Paginated[domain.Comment]{}, err
	}

	replies, count, err := s.repo.ListReplies(ctx, id, page)
	if err != nil {
		return domain.Paginated[domain.Comment]{}, fmt.Errorf("s.repo.ListReplies -> %w", err)
	}

	return domain.NewPaginated(replies, count, page), nil
}

// visibleComment returns the comment when requesterID may see its event.
// Comments of hidden events are reported as not found.
func (s *CommentService) visibleComment(ctx context.Context, requesterID, id uint) (domain.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}

	if _, err = s.events.GetByID(ctx, requesterID, comment.EventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.Comment{}, ErrCommentNotFound
		}

		return domain.Comment{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	return comment, nil
}

func (s *CommentService) authored(ctx context.Context, userID, id uint) (domain.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}

	if comment.AuthorID != userID {
		return domain.Comment{}, ErrNotCommentAuthor
	}

	return comment, nil
}
