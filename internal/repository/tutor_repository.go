package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// TutorRepository loads tutor rosters together with their availability.
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository instantiates a tutor repository.
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

type tutorCourseRow struct {
	TutorProfileID int64  `db:"tutor_profile_id"`
	CourseCode     string `db:"course_code"`
}

// ListByTerm returns every tutor profile of the term with courses, regular
// blocks and date exceptions attached. Blocks and exceptions keep their
// insertion order.
func (r *TutorRepository) ListByTerm(ctx context.Context, termID int64) ([]models.TutorProfile, error) {
	const profilesQuery = `SELECT tp.id, tp.user_id, tp.term_id, tp.approved, tp.about_me, u.first_name, u.last_name, tp.created_at
FROM tutor_profiles tp
JOIN users u ON u.id = tp.user_id
WHERE tp.term_id = $1
ORDER BY tp.id`
	var profiles []models.TutorProfile
	if err := r.db.SelectContext(ctx, &profiles, profilesQuery, termID); err != nil {
		return nil, fmt.Errorf("list tutor profiles: %w", err)
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	ids := make([]int64, len(profiles))
	index := make(map[int64]int, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
		index[p.ID] = i
	}

	var courses []tutorCourseRow
	if err := r.db.SelectContext(ctx, &courses,
		`SELECT tutor_profile_id, course_code FROM tutor_courses WHERE tutor_profile_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list tutor courses: %w", err)
	}
	for _, c := range courses {
		if i, ok := index[c.TutorProfileID]; ok {
			profiles[i].Courses = append(profiles[i].Courses, c.CourseCode)
		}
	}

	var blocks []models.RegularScheduleBlock
	if err := r.db.SelectContext(ctx, &blocks,
		`SELECT id, tutor_profile_id, day_of_week, start_time, end_time, location FROM tutor_schedule_blocks WHERE tutor_profile_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list tutor schedule blocks: %w", err)
	}
	for _, b := range blocks {
		if i, ok := index[b.TutorProfileID]; ok {
			profiles[i].RegularSchedule = append(profiles[i].RegularSchedule, b)
		}
	}

	var exceptions []models.DateException
	if err := r.db.SelectContext(ctx, &exceptions,
		`SELECT id, tutor_profile_id, date, start_time, end_time, location FROM date_blocks WHERE tutor_profile_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list tutor date blocks: %w", err)
	}
	for _, e := range exceptions {
		if i, ok := index[e.TutorProfileID]; ok {
			profiles[i].Exceptions = append(profiles[i].Exceptions, e)
		}
	}

	return profiles, nil
}
