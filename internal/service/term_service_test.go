package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
)

type termRepoStub struct {
	terms      []models.Term
	total      int
	listErr    error
	lastFilter models.TermFilter
}

func (s *termRepoStub) List(_ context.Context, filter models.TermFilter) ([]models.Term, int, error) {
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.terms, s.total, nil
}

func (s *termRepoStub) FindByID(_ context.Context, id int64) (*models.Term, error) {
	for _, t := range s.terms {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestTermServiceListNormalisesPaging(t *testing.T) {
	repo := &termRepoStub{terms: []models.Term{{ID: 1, Name: "Spring"}}, total: 1}
	svc := NewTermService(repo, nil)

	terms, pagination, err := svc.List(context.Background(), models.TermFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, terms, 1)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: maxTermPageSize, TotalCount: 1}, pagination)
	assert.Equal(t, maxTermPageSize, repo.lastFilter.PageSize)
}

func TestTermServiceListEmpty(t *testing.T) {
	svc := NewTermService(&termRepoStub{}, nil)

	terms, pagination, err := svc.List(context.Background(), models.TermFilter{})
	require.NoError(t, err)
	assert.NotNil(t, terms)
	assert.Equal(t, defaultTermPageSize, pagination.PageSize)
}

func TestTermServiceListFailure(t *testing.T) {
	svc := NewTermService(&termRepoStub{listErr: errors.New("boom")}, nil)

	_, _, err := svc.List(context.Background(), models.TermFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestTermServiceGet(t *testing.T) {
	svc := NewTermService(&termRepoStub{terms: []models.Term{{ID: 3, Name: "Fall", Published: true}}}, nil)

	term, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Fall", term.Name)

	_, err = svc.Get(context.Background(), 4)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), 0)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
