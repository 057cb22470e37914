// AngelaMos | 2026
// service.go

package book

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/carterperez-dev/bookhive/internal/core"
)

// CoverStore abstracts the on-disk cover storage. Reads are tolerant:
// a missing file yields nil, never an error.
type CoverStore interface {
	SaveCover(ownerID string, r io.Reader) (string, error)
	ReadCover(path string) []byte
	Remove(path string) error
}

type Service struct {
	repo    Repository
	history HistoryRepository
	tx      TxRunner
	covers  CoverStore
}

func NewService(
	repo Repository,
	history HistoryRepository,
	tx TxRunner,
	covers CoverStore,
) *Service {
	return &Service{
		repo:    repo,
		history: history,
		tx:      tx,
		covers:  covers,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req BookRequest,
	ownerID string,
) (string, error) {
	b := &Book{
		ID:         uuid.New().String(),
		Title:      req.Title,
		AuthorName: req.AuthorName,
		ISBN:       req.ISBN,
		Synopsis:   req.Synopsis,
		Archived:   false,
		Shareable:  req.Shareable,
		OwnerID:    ownerID,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return "", err
	}

	return b.ID, nil
}

func (s *Service) FindByID(
	ctx context.Context,
	bookID string,
) (*BookResponse, error) {
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("book")
		}
		return nil, err
	}

	resp := s.toBookResponse(b)
	return &resp, nil
}

func (s *Service) FindAllDiscoverable(
	ctx context.Context,
	userID string,
	page, size int,
) ([]BookResponse, int64, error) {
	books, total, err := s.repo.ListDiscoverable(ctx, userID, page, size)
	if err != nil {
		return nil, 0, err
	}

	return s.toBookResponses(books), total, nil
}

func (s *Service) FindAllByOwner(
	ctx context.Context,
	ownerID string,
	page, size int,
) ([]BookResponse, int64, error) {
	books, total, err := s.repo.ListByOwner(ctx, ownerID, page, size)
	if err != nil {
		return nil, 0, err
	}

	return s.toBookResponses(books), total, nil
}

func (s *Service) FindAllBorrowed(
	ctx context.Context,
	userID string,
	page, size int,
) ([]BorrowedBookResponse, int64, error) {
	rows, total, err := s.history.ListBorrowedByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, err
	}

	return toBorrowedResponses(rows), total, nil
}

func (s *Service) FindAllReturned(
	ctx context.Context,
	ownerID string,
	page, size int,
) ([]BorrowedBookResponse, int64, error) {
	rows, total, err := s.history.ListReturnedForOwner(
		ctx, ownerID, page, size,
	)
	if err != nil {
		return nil, 0, err
	}

	return toBorrowedResponses(rows), total, nil
}

// ToggleShareable flips the shareable flag. Only the owner may do it.
func (s *Service) ToggleShareable(
	ctx context.Context,
	bookID, userID string,
) (string, error) {
	b, err := s.ownedBook(ctx, bookID, userID,
		"You cannot update others books shareable status")
	if err != nil {
		return "", err
	}

	if err := s.repo.SetShareable(ctx, bookID, !b.Shareable); err != nil {
		return "", err
	}

	return bookID, nil
}

func (s *Service) ToggleArchived(
	ctx context.Context,
	bookID, userID string,
) (string, error) {
	b, err := s.ownedBook(ctx, bookID, userID,
		"You cannot update others books archived status")
	if err != nil {
		return "", err
	}

	if err := s.repo.SetArchived(ctx, bookID, !b.Archived); err != nil {
		return "", err
	}

	return bookID, nil
}

// Borrow creates a loan record after the availability guards pass. The
// whole sequence runs in one transaction with the book row locked, so
// two racing borrowers cannot both slip past the exclusivity check.
func (s *Service) Borrow(
	ctx context.Context,
	bookID, userID string,
) (string, error) {
	var historyID string

	err := s.tx.InLendingTx(ctx, func(
		books Repository,
		history HistoryRepository,
	) error {
		b, err := books.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("book")
			}
			return err
		}

		if b.Archived || !b.Shareable {
			return core.OperationNotPermittedError(
				"The requested book cannot be borrowed since it is archived or not shareable")
		}

		if b.OwnerID == userID {
			return core.OperationNotPermittedError(
				"You cannot borrow your own book")
		}

		borrowedByUser, err := history.HasUnresolvedLoanByUser(
			ctx, bookID, userID,
		)
		if err != nil {
			return err
		}
		if borrowedByUser {
			return core.OperationNotPermittedError(
				"You already borrowed this book and it is still not returned or the return is not approved by the owner")
		}

		borrowed, err := history.HasUnresolvedLoan(ctx, bookID)
		if err != nil {
			return err
		}
		if borrowed {
			return core.OperationNotPermittedError(
				"The requested book is already borrowed")
		}

		h := &TransactionHistory{
			ID:     uuid.New().String(),
			UserID: userID,
			BookID: bookID,
		}

		if err := history.Create(ctx, h); err != nil {
			// The partial unique index backs up the guard above.
			if errors.Is(err, core.ErrDuplicateKey) {
				return core.OperationNotPermittedError(
					"The requested book is already borrowed")
			}
			return err
		}

		historyID = h.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	return historyID, nil
}

// Return moves the caller's open loan to the returned state.
func (s *Service) Return(
	ctx context.Context,
	bookID, userID string,
) (string, error) {
	var historyID string

	err := s.tx.InLendingTx(ctx, func(
		books Repository,
		history HistoryRepository,
	) error {
		b, err := books.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("book")
			}
			return err
		}

		if b.Archived || !b.Shareable {
			return core.OperationNotPermittedError(
				"The requested book is archived or not shareable")
		}

		if b.OwnerID == userID {
			return core.OperationNotPermittedError(
				"You cannot borrow or return your own book")
		}

		h, err := history.FindUnresolvedByUser(ctx, bookID, userID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.OperationNotPermittedError(
					"You did not borrow this book")
			}
			return err
		}

		if err := history.MarkReturned(ctx, h.ID); err != nil {
			return err
		}

		historyID = h.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	return historyID, nil
}

// ApproveReturn lets the owner close out a returned loan.
func (s *Service) ApproveReturn(
	ctx context.Context,
	bookID, userID string,
) (string, error) {
	var historyID string

	err := s.tx.InLendingTx(ctx, func(
		books Repository,
		history HistoryRepository,
	) error {
		b, err := books.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("book")
			}
			return err
		}

		if b.Archived || !b.Shareable {
			return core.OperationNotPermittedError(
				"The requested book is archived or not shareable")
		}

		if b.OwnerID != userID {
			return core.OperationNotPermittedError(
				"You cannot approve the return of a book you do not own")
		}

		h, err := history.FindReturnedForOwner(ctx, bookID, userID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return core.OperationNotPermittedError(
					"The book is not returned yet. You cannot approve its return")
			}
			return err
		}

		if err := history.MarkApproved(ctx, h.ID); err != nil {
			return err
		}

		historyID = h.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	return historyID, nil
}

// UploadCover stores a new cover image and records its path on the
// book. The previous cover, if any, is removed on a best-effort basis.
func (s *Service) UploadCover(
	ctx context.Context,
	bookID, userID string,
	file io.Reader,
) error {
	b, err := s.ownedBook(ctx, bookID, userID,
		"You cannot upload a cover for a book you do not own")
	if err != nil {
		return err
	}

	path, err := s.covers.SaveCover(userID, file)
	if err != nil {
		return err
	}

	if err := s.repo.SetCoverPath(ctx, bookID, path); err != nil {
		return err
	}

	if b.CoverPath != nil {
		if removeErr := s.covers.Remove(*b.CoverPath); removeErr != nil {
			return fmt.Errorf("remove previous cover: %w", removeErr)
		}
	}

	return nil
}

func (s *Service) ownedBook(
	ctx context.Context,
	bookID, userID, denyMessage string,
) (*Book, error) {
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("book")
		}
		return nil, err
	}

	if b.OwnerID != userID {
		return nil, core.OperationNotPermittedError(denyMessage)
	}

	return b, nil
}

func (s *Service) toBookResponse(b *Book) BookResponse {
	var cover []byte
	if b.CoverPath != nil {
		cover = s.covers.ReadCover(*b.CoverPath)
	}

	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		AuthorName: b.AuthorName,
		ISBN:       b.ISBN,
		Synopsis:   b.Synopsis,
		Owner:      b.OwnerName,
		Cover:      cover,
		Rate:       b.Rate,
		Archived:   b.Archived,
		Shareable:  b.Shareable,
	}
}

func (s *Service) toBookResponses(books []Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, s.toBookResponse(&books[i]))
	}
	return responses
}

func toBorrowedResponses(rows []BorrowedBookRow) []BorrowedBookResponse {
	responses := make([]BorrowedBookResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, BorrowedBookResponse{
			ID:             row.BookID,
			Title:          row.Title,
			AuthorName:     row.AuthorName,
			ISBN:           row.ISBN,
			Rate:           row.Rate,
			Returned:       row.Returned,
			ReturnApproved: row.ReturnApproved,
		})
	}
	return responses
}
