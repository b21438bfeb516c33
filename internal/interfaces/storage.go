package interfaces

import (
	"time"

	"github.com/ternarybob/doceo/internal/models"
)

// CourseStorage persists finished course artifacts opaquely. The pipeline has
// no schema coupling to the store beyond the Course shape itself.
type CourseStorage interface {
	SaveCourse(course *models.Course) error
	GetCourse(id string) (*models.Course, error)
	ListCourses(limit int) ([]*models.Course, error)
	DeleteCourse(id string) error
	CountCourses() (int, error)
}

// AuditStorage persists generation call audit entries
type AuditStorage interface {
	SaveEntry(entry *models.AuditEntry) error
	ListEntries(limit int) ([]models.AuditEntry, error)

	// DeleteOlderThan removes entries with a timestamp before cutoff and
	// returns the number removed
	DeleteOlderThan(cutoff time.Time) (int, error)
}
