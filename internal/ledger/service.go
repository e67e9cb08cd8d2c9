package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Repository loads and saves one company's ledger data. A company with no
// stored data loads as an empty Ledger.
type Repository interface {
	Load(ctx context.Context, companyID string) (model.Ledger, error)
	Save(ctx context.Context, companyID string, data model.Ledger) error
}

// Service opens and saves Books through a Repository.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a ledger Service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Open loads the Book of companyID. A company without a chart of accounts
// starts from the default chart.
func (s *Service) Open(ctx context.Context, companyID string) (*Book, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", model.ErrValidation)
	}

	data, err := s.repo.Load(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading company %s: %w", companyID, err)
	}

	if len(data.Accounts) == 0 {
		data.Accounts = accounts.DefaultChart()
		s.logger.Info("seeded default chart of accounts",
			zap.String("company", companyID),
			zap.Int("accounts", len(data.Accounts)))
	}

	s.logger.Debug("opened book",
		zap.String("company", companyID),
		zap.Int("accounts", len(data.Accounts)),
		zap.Int("entries", len(data.Entries)))
	return NewBook(companyID, data), nil
}

// Save persists a Book.
func (s *Service) Save(ctx context.Context, book *Book) error {
	data := book.Data()
	if err := s.repo.Save(ctx, book.CompanyID, data); err != nil {
		return fmt.Errorf("saving company %s: %w", book.CompanyID, err)
	}
	s.logger.Debug("saved book",
		zap.String("company", book.CompanyID),
		zap.Int("accounts", len(data.Accounts)),
		zap.Int("entries", len(data.Entries)))
	return nil
}
