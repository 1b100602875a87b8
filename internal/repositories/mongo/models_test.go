package mongo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"smarthire_backend/internal/models"
)

func TestJobDocConversionKeepsApprovalMetadata(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	admin := "admin-1"
	job := &models.Job{
		BaseModel:       models.BaseModel{ID: "job-1", CreatedAt: now, UpdatedAt: now},
		Title:           "Go Engineer",
		Location:        models.JobLocation{City: "Pokhara", Country: "Nepal", Remote: true},
		JobType:         models.JobTypeContract,
		ExperienceLevel: models.ExperienceMid,
		Salary:          models.Salary{Min: 1, Max: 2, Currency: "USD"},
		SkillsRequired:  []string{"go"},
		EmployerID:      "employer-1",
		Status:          models.JobStatusApproved,
		ApprovedBy:      &admin,
		ApprovedAt:      &now,
		PostedDate:      now,
		ExpiryDate:      now.Add(time.Hour),
		IsActive:        true,
	}

	if diff := cmp.Diff(job, fromJobDoc(toJobDoc(job))); diff != "" {
		t.Errorf("job conversion mismatch (-want +got):\n%s", diff)
	}
}

func TestMigrationIndexesCoverUniqueConstraints(t *testing.T) {
	idx := migrationIndexes()

	assert.Contains(t, idx, colUsers)
	assert.Contains(t, idx, colApplications)
	assert.Contains(t, idx, colSubscriptions)
	assert.NotNil(t, idx[colApplications][0].Options)
	assert.NotNil(t, idx[colUsers][0].Options)
}
