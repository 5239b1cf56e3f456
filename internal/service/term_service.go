package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
)

const (
	defaultTermPageSize = 20
	maxTermPageSize     = 100
)

type termRepository interface {
	List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error)
	FindByID(ctx context.Context, id int64) (*models.Term, error)
}

// TermService exposes read access to tutoring terms.
type TermService struct {
	repo   termRepository
	logger *zap.Logger
}

// NewTermService creates a new term service instance.
func NewTermService(repo termRepository, logger *zap.Logger) *TermService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{repo: repo, logger: logger}
}

// List returns paginated terms.
func (s *TermService) List(ctx context.Context, filter models.TermFilter) ([]models.Term, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultTermPageSize
	}
	if filter.PageSize > maxTermPageSize {
		filter.PageSize = maxTermPageSize
	}

	terms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	if terms == nil {
		terms = []models.Term{}
	}

	return terms, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}, nil
}

// Get returns a term by ID.
func (s *TermService) Get(ctx context.Context, id int64) (*models.Term, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term id must be positive")
	}
	term, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	return term, nil
}
