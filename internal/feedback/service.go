// AngelaMos | 2026
// service.go

package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carterperez-dev/bookhive/internal/book"
	"github.com/carterperez-dev/bookhive/internal/core"
)

type Service struct {
	repo  Repository
	books book.Repository
}

func NewService(repo Repository, books book.Repository) *Service {
	return &Service{
		repo:  repo,
		books: books,
	}
}

// Save records feedback on someone else's discoverable book. The same
// archived/shareable/self-dealing guards as lending apply.
func (s *Service) Save(
	ctx context.Context,
	req FeedbackRequest,
	userID string,
) (string, error) {
	b, err := s.books.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", core.NotFoundError("book")
		}
		return "", err
	}

	if b.Archived || !b.Shareable {
		return "", core.OperationNotPermittedError(
			"You cannot give a feedback for an archived or not shareable book")
	}

	if b.OwnerID == userID {
		return "", core.OperationNotPermittedError(
			"You cannot give feedback to your own book")
	}

	f := &Feedback{
		ID:      uuid.New().String(),
		BookID:  req.BookID,
		UserID:  userID,
		Note:    req.Note,
		Comment: req.Comment,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return "", err
	}

	return f.ID, nil
}

func (s *Service) FindAllByBook(
	ctx context.Context,
	bookID, userID string,
	page, size int,
) ([]FeedbackResponse, int64, error) {
	feedbacks, total, err := s.repo.ListByBook(ctx, bookID, page, size)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		responses = append(responses, FeedbackResponse{
			Note:        f.Note,
			Comment:     f.Comment,
			OwnFeedback: f.UserID == userID,
		})
	}

	return responses, total, nil
}
