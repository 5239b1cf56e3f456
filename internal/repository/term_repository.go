package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-api/internal/models"
)

const termColumns = "id, name, start_date, end_date, time_increment, max_hours_tutees_allowed, min_tutor_weekly_hours, max_tutor_weekly_hours, published, created_at, updated_at"

// TermRepository handles persistence for tutoring terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns terms matching provided filters.
func (r *TermRepository) List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error) {
	base := "FROM terms WHERE 1=1"
	var args []interface{}

	if filter.Published != nil {
		base += fmt.Sprintf(" AND published = $%d", len(args)+1)
		args = append(args, *filter.Published)
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"name":       true,
		"start_date": true,
		"end_date":   true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "start_date"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s NULLS LAST, id LIMIT %d OFFSET %d", termColumns, base, sortBy, order, size, offset)
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list terms: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count terms: %w", err)
	}

	return terms, total, nil
}

// FindByID loads a term with the courses offered in it. sql.ErrNoRows is
// returned untouched when the term does not exist.
func (r *TermRepository) FindByID(ctx context.Context, id int64) (*models.Term, error) {
	query := fmt.Sprintf("SELECT %s FROM terms WHERE id = $1", termColumns)
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}

	courses, err := r.ListCourses(ctx, id)
	if err != nil {
		return nil, err
	}
	term.Courses = courses
	return &term, nil
}

// ListCourses returns the course codes offered in a term.
func (r *TermRepository) ListCourses(ctx context.Context, termID int64) ([]string, error) {
	const query = `SELECT course_code FROM term_courses WHERE term_id = $1 ORDER BY course_code`
	var courses []string
	if err := r.db.SelectContext(ctx, &courses, query, termID); err != nil {
		return nil, fmt.Errorf("list term courses: %w", err)
	}
	return courses, nil
}
