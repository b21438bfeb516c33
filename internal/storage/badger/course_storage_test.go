package badger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err, "Failed to open test store")
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestCourseStorageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewCourseStorage(db, arbor.NewLogger())

	course := &models.Course{
		ID:    "course-1",
		Title: "Graph Theory Basics",
		Sessions: []models.Session{
			{ID: "session-0", Title: "Foundations", Lessons: []models.Lesson{
				{ID: "session-0-lesson-0", Title: "What Is a Graph", TimeEstimateMinutes: 30},
			}},
		},
		TotalEstimatedTimeMinutes: 30,
	}

	require.NoError(t, storage.SaveCourse(course), "Failed to save course")

	got, err := storage.GetCourse("course-1")
	require.NoError(t, err, "Failed to load saved course")
	assert.Equal(t, course.Title, got.Title)
	require.Len(t, got.Sessions, 1, "Nested sessions should survive the round trip")
	assert.Len(t, got.Sessions[0].Lessons, 1, "Nested lessons should survive the round trip")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set on save")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set on save")

	count, err := storage.CountCourses()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCourseStorageListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	storage := NewCourseStorage(db, arbor.NewLogger())

	older := &models.Course{ID: "course-old", Title: "Old", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Course{ID: "course-new", Title: "New", CreatedAt: time.Now()}

	require.NoError(t, storage.SaveCourse(older))
	require.NoError(t, storage.SaveCourse(newer))

	courses, err := storage.ListCourses(10)
	require.NoError(t, err, "Failed to list courses")
	require.Len(t, courses, 2)
	assert.Equal(t, "course-new", courses[0].ID, "Newest course should come first")
}

func TestCourseStorageDeleteMissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	storage := NewCourseStorage(db, arbor.NewLogger())

	assert.NoError(t, storage.DeleteCourse("does-not-exist"), "Deleting a missing course should not error")
}

func TestAuditStorageRetention(t *testing.T) {
	db := newTestDB(t)
	storage := NewAuditStorage(db, arbor.NewLogger())

	old := &models.AuditEntry{ID: "old", Timestamp: time.Now().Add(-48 * time.Hour), Provider: "gemini", Operation: "generate"}
	fresh := &models.AuditEntry{ID: "fresh", Timestamp: time.Now(), Provider: "gemini", Operation: "generate"}

	require.NoError(t, storage.SaveEntry(old))
	require.NoError(t, storage.SaveEntry(fresh))

	deleted, err := storage.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err, "Failed to delete expired entries")
	assert.Equal(t, 1, deleted)

	entries, err := storage.ListEntries(10)
	require.NoError(t, err)
	require.Len(t, entries, 1, "Only the fresh entry should remain")
	assert.Equal(t, "fresh", entries[0].ID)
}
