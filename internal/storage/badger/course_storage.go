package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CourseStorage implements the CourseStorage interface for Badger
type CourseStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCourseStorage creates a new CourseStorage instance
func NewCourseStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CourseStorage {
	return &CourseStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CourseStorage) SaveCourse(course *models.Course) error {
	if course.ID == "" {
		return fmt.Errorf("course ID is required")
	}

	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	if err := s.db.Store().Upsert(course.ID, course); err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	return nil
}

func (s *CourseStorage) GetCourse(id string) (*models.Course, error) {
	var course models.Course
	if err := s.db.Store().Get(id, &course); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("course not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

func (s *CourseStorage) ListCourses(limit int) ([]*models.Course, error) {
	if limit <= 0 {
		limit = 50
	}

	var courses []models.Course
	if err := s.db.Store().Find(&courses, badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(limit)); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	result := make([]*models.Course, len(courses))
	for i := range courses {
		result[i] = &courses[i]
	}
	return result, nil
}

func (s *CourseStorage) DeleteCourse(id string) error {
	if err := s.db.Store().Delete(id, &models.Course{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

func (s *CourseStorage) CountCourses() (int, error) {
	count, err := s.db.Store().Count(&models.Course{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return int(count), nil
}
