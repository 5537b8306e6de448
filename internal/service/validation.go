package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/gabriel-vasile/mimetype"

	"github.com/vietanh2810/social-events-api/internal/domain"
	"github.com/vietanh2810/social-events-api/internal/pkg/slugify"
)

const DefaultMaxImageSize = 5 << 20

var (
	errStartInPast       = domain.NewValidationError("Event cannot start in the past")
	errEndBeforeStart    = domain.NewValidationError("End date must be after start date")
	errImageTooLarge     = domain.NewValidationError("Image file too large. Size should not exceed 5 MB.")
	errImageNotImage     = domain.NewValidationError("Uploaded file is not a valid image.")
	errInvalidStatus     = domain.NewValidationError("Invalid status value")
	errCapacityRange     = domain.NewValidationError(fmt.Sprintf("Capacity must be between %d and %d.", domain.MinEventCapacity, domain.MaxEventCapacity))
	errNegativePrice     = domain.NewValidationError("Ensure this value is greater than or equal to 0.")
	errTitleRequired     = domain.NewValidationError("Title is required to generate a slug")
	errSlugTaken         = domain.NewValidationError("Name must be unique. The provided name already exists.")
	errEventIDRequired   = domain.NewValidationError("Event ID is required for updating")
	errNestedReply       = domain.NewValidationError("Nested replies are not allowed (max 1 level)")
	errReplyOtherEvent   = domain.NewValidationError("Reply must be to a comment on the same event")
	errEmptyComment      = domain.NewValidationError("Comment content cannot be empty")
	errCommentTooLong    = domain.NewValidationError(fmt.Sprintf("Comment is too long (max %d characters)", domain.MaxCommentLength))
	errPasswordLength    = domain.NewValidationError("The password length must be between 8 and 100 characters")
	errPasswordLowercase = domain.NewValidationError("The password must contain at least one lowercase letter")
	errPasswordUppercase = domain.NewValidationError("The password must contain at least one uppercase letter")
	errPasswordDigit     = domain.NewValidationError("The password must contain at least one digit")
	errPasswordSpecial   = domain.NewValidationError(`The password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`)
	errEmailTaken        = domain.NewValidationError("Email Already Taken")
)

type SlugChecker interface {
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// EventCandidate is an event about to be created or updated.
type EventCandidate struct {
	ID           uint
	Title        string
	StartDate    time.Time
	EndDate      time.Time
	StartChanged bool
	Status       string
	Capacity     int
	Price        float64
	Image        io.ReadSeeker
	ImageSize    int64
}

// EventValidator checks an EventCandidate and derives its slug.
type EventValidator struct {
	slugs        SlugChecker
	maxImageSize int64
	now          func() time.Time
}

func NewEventValidator(slugs SlugChecker, maxImageSize int64) *EventValidator {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}

	return &EventValidator{
		slugs:        slugs,
		maxImageSize: maxImageSize,
		now:          time.Now,
	}
}

// ValidatedEvent holds what validation derives from an EventCandidate.
type ValidatedEvent struct {
	Slug     string
	ImageExt string
}

// Validate returns the first rule the candidate breaks.
// The start date may only be in the past for an update that leaves it unchanged.
func (v *EventValidator) Validate(ctx context.Context, c EventCandidate, creating bool) (ValidatedEvent, error) {
	var out ValidatedEvent

	if err := v.validateDates(c, creating); err != nil {
		return out, err
	}

	if c.Image != nil {
		ext, err := v.ValidateImage(c.Image, c.ImageSize)
		if err != nil {
			return out, err
		}
		out.ImageExt = ext
	}

	if !domain.IsValidEventStatus(c.Status) {
		return out, errInvalidStatus
	}

	if c.Capacity < domain.MinEventCapacity || c.Capacity > domain.MaxEventCapacity {
		return out, errCapacityRange
	}

	if c.Price < 0 {
		return out, errNegativePrice
	}

	slug, err := v.slug(ctx, c, creating)
	if err != nil {
		return out, err
	}
	out.Slug = slug

	return out, nil
}

func (v *EventValidator) validateDates(c EventCandidate, creating bool) error {
	if (creating || c.StartChanged) && c.StartDate.Before(v.now()) {
		return errStartInPast
	}

	if !c.EndDate.After(c.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

// ValidateImage checks the size and the sniffed content type, rewinds r and
// returns the file extension matching the content.
func (v *EventValidator) ValidateImage(r io.ReadSeeker, size int64) (string, error) {
	if size > v.maxImageSize {
		return "", errImageTooLarge
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("mimetype.DetectReader -> %w", err)
	}

	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("r.Seek -> %w", err)
	}

	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", errImageNotImage
	}

	return mtype.Extension(), nil
}

func (v *EventValidator) slug(ctx context.Context, c EventCandidate, creating bool) (string, error) {
	if strings.TrimSpace(c.Title) == "" {
		return "", errTitleRequired
	}

	slug := slugify.Make(c.Title)
	if slug == "" {
		return "", errTitleRequired
	}

	if !creating && c.ID == 0 {
		return "", errEventIDRequired
	}

	exists, err := v.slugs.SlugExists(ctx, slug, c.ID)
	if err != nil {
		return "", fmt.Errorf("v.slugs.SlugExists -> %w", err)
	}
	if exists {
		return "", errSlugTaken
	}

	return slug, nil
}

// CommentCandidate is a comment about to be written. Parent is nil for top-level comments.
type CommentCandidate struct {
	EventID uint
	Parent  *domain.Comment
	Content string
}

type CommentValidator struct{}

// Validate returns the trimmed content.
func (CommentValidator) Validate(c CommentCandidate) (string, error) {
	if c.Parent != nil {
		if c.Parent.IsReply() {
			return "", errNestedReply
		}
		if c.Parent.EventID != c.EventID {
			return "", errReplyOtherEvent
		}
	}

	return ValidateCommentContent(c.Content)
}

func ValidateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errEmptyComment
	}

	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		return "", errCommentTooLong
	}

	return content, nil
}

var passwordRules = []struct {
	re  *regexp2.Regexp
	err error
}{
	{regexp2.MustCompile(`^(?=.*[a-z])`, regexp2.None), errPasswordLowercase},
	{regexp2.MustCompile(`^(?=.*[A-Z])`, regexp2.None), errPasswordUppercase},
	{regexp2.MustCompile(`^(?=.*\d)`, regexp2.None), errPasswordDigit},
	{regexp2.MustCompile(`^(?=.*[!@#$%^&*(),.?":{}|<>])`, regexp2.None), errPasswordSpecial},
}

type PasswordValidator struct{}

func (PasswordValidator) Validate(password string) error {
	if n := utf8.RuneCountInString(password); n < 8 || n > 100 {
		return errPasswordLength
	}

	for _, rule := range passwordRules {
		ok, err := rule.re.MatchString(password)
		if err != nil {
			return fmt.Errorf("rule.re.MatchString -> %w", err)
		}
		if !ok {
			return rule.err
		}
	}

	return nil
}

type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserValidator checks a signup: the email must be free and the password strong enough.
type UserValidator struct {
	emails    EmailChecker
	passwords PasswordValidator
}

func NewUserValidator(emails EmailChecker) *UserValidator {
	return &UserValidator{
		emails: emails,
	}
}

func (v *UserValidator) Validate(ctx context.Context, email, password string) error {
	taken, err := v.emails.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("v.emails.EmailExists -> %w", err)
	}
	if taken {
		return errEmailTaken
	}

	return v.passwords.Validate(password)
}
