package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/models"
	"github.com/noah-isme/tutoring-api/internal/service"
)

type termRepoFake struct {
	terms  []models.Term
	filter models.TermFilter
}

func (f *termRepoFake) List(_ context.Context, filter models.TermFilter) ([]models.Term, int, error) {
	f.filter = filter
	return f.terms, len(f.terms), nil
}

func (f *termRepoFake) FindByID(_ context.Context, id int64) (*models.Term, error) {
	for _, t := range f.terms {
		if t.ID == id {
			clone := t
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func termRouter(repo *termRepoFake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTermHandler(service.NewTermService(repo, nil))
	r := gin.New()
	r.GET("/terms", h.List)
	r.GET("/terms/:id", h.Get)
	return r
}

func TestTermHandlerListPublished(t *testing.T) {
	repo := &termRepoFake{terms: []models.Term{{ID: 1, Name: "Spring", Published: true}}}

	rec := httptest.NewRecorder()
	termRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terms?published=true&limit=5&sort=name", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.filter.Published)
	assert.True(t, *repo.filter.Published)
	assert.Equal(t, 5, repo.filter.PageSize)
	assert.Equal(t, "name", repo.filter.SortBy)

	var env struct {
		Data       []models.Term      `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Len(t, env.Data, 1)
	assert.Equal(t, 1, env.Pagination.TotalCount)
}

func TestTermHandlerGet(t *testing.T) {
	router := termRouter(&termRepoFake{terms: []models.Term{{ID: 4, Name: "Fall"}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terms/4", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terms/5", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terms/x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
