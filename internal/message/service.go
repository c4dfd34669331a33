package message

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ayush/social-media-api/internal/models"
)

// maxTextLen is the exclusive upper bound on message text length; 254
// characters pass, 255 do not.
const maxTextLen = 255

// Store defines the persistence operations the message service needs. The
// account lookup is here because message creation checks the author exists.
type Store interface {
	FindAccountByID(ctx context.Context, id int) (*models.Account, error)
	InsertMessage(ctx context.Context, postedBy int, text string, epoch int64) (*models.Message, error)
	ListAllMessages(ctx context.Context) ([]models.Message, error)
	FindMessageByID(ctx context.Context, id int) (*models.Message, error)
	DeleteMessageByID(ctx context.Context, id int) (*models.Message, error)
	UpdateMessageText(ctx context.Context, id int, newText string) (*models.Message, error)
	ListMessagesByAccountID(ctx context.Context, id int) ([]models.Message, error)
}

// Service enforces the message validation rules before delegating to the
// store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func validText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) < maxTextLen
}

// Create persists a new message. It returns nil when the text is blank or too
// long, the posting account does not exist, or the insert fails.
func (s *Service) Create(ctx context.Context, postedBy int, text string, epoch int64) *models.Message {
	if !validText(text) {
		return nil
	}
	if poster, _ := s.store.FindAccountByID(ctx, postedBy); poster == nil {
		return nil
	}
	created, err := s.store.InsertMessage(ctx, postedBy, text, epoch)
	if err != nil {
		return nil
	}
	return created
}

// ListAll returns every message in insertion order. The slice is never nil.
func (s *Service) ListAll(ctx context.Context) []models.Message {
	msgs, _ := s.store.ListAllMessages(ctx)
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs
}

// GetByID returns the message, or nil if it does not exist.
func (s *Service) GetByID(ctx context.Context, id int) *models.Message {
	msg, _ := s.store.FindMessageByID(ctx, id)
	return msg
}

// Delete removes the message and returns it, or nil if nothing was deleted.
// Absence is not an error.
func (s *Service) Delete(ctx context.Context, id int) *models.Message {
	msg, _ := s.store.DeleteMessageByID(ctx, id)
	return msg
}

// Update replaces the message text and returns the updated message. It
// returns nil when the new text is blank or too long, or no message with the
// id exists.
func (s *Service) Update(ctx context.Context, id int, newText string) *models.Message {
	if !validText(newText) {
		return nil
	}
	if existing, _ := s.store.FindMessageByID(ctx, id); existing == nil {
		return nil
	}
	updated, err := s.store.UpdateMessageText(ctx, id, newText)
	if err != nil {
		return nil
	}
	return updated
}

// ListByAccount returns the account's messages in insertion order. An unknown
// account yields an empty slice, not a rejection.
func (s *Service) ListByAccount(ctx context.Context, accountID int) []models.Message {
	msgs, _ := s.store.ListMessagesByAccountID(ctx, accountID)
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs
}
