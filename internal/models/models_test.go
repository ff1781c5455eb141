package models_test

import (
	"testing"

	"careerbridge/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleScan(t *testing.T) {
	t.Run("Valid String", func(t *testing.T) {
		var r models.Role
		require.NoError(t, r.Scan("employer"))
		assert.Equal(t, models.RoleEmployer, r)
	})

	t.Run("Valid Bytes", func(t *testing.T) {
		var r models.Role
		require.NoError(t, r.Scan([]byte("admin")))
		assert.Equal(t, models.RoleAdmin, r)
	})

	t.Run("Invalid Value", func(t *testing.T) {
		var r models.Role
		err := r.Scan("superuser")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid Role value")
	})

	t.Run("Wrong Type", func(t *testing.T) {
		var r models.Role
		require.Error(t, r.Scan(42))
	})
}

func TestRoleValue(t *testing.T) {
	v, err := models.RoleStudent.Value()
	require.NoError(t, err)
	assert.Equal(t, "student", v)
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, models.RoleAdmin.IsValid())
	assert.True(t, models.RoleEmployer.IsValid())
	assert.True(t, models.RoleStudent.IsValid())
	assert.False(t, models.Role("superuser").IsValid())
	assert.False(t, models.Role("").IsValid())
}

func TestJobStatusScan(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		var js models.JobStatus
		require.NoError(t, js.Scan("approved"))
		assert.Equal(t, models.JobStatusApproved, js)
	})

	t.Run("Invalid Value", func(t *testing.T) {
		var js models.JobStatus
		require.Error(t, js.Scan("archived"))
	})
}

func TestApplicationStatusScan(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		var as models.ApplicationStatus
		require.NoError(t, as.Scan([]byte("accepted")))
		assert.Equal(t, models.ApplicationStatusAccepted, as)
	})

	t.Run("Invalid Value", func(t *testing.T) {
		var as models.ApplicationStatus
		require.Error(t, as.Scan("withdrawn"))
	})
}

func TestUserRoleHelpers(t *testing.T) {
	u := &models.User{Role: models.RoleEmployer}
	assert.True(t, u.IsEmployer())
	assert.False(t, u.IsAdmin())
	assert.False(t, u.IsStudent())
}

func TestSplitRequirements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Simple Lines",
			input: "Friendly\nPunctual",
			want:  []string{"Friendly", "Punctual"},
		},
		{
			name:  "Trims And Drops Blanks",
			input: "  Friendly  \n\n\t\n  Punctual\n",
			want:  []string{"Friendly", "Punctual"},
		},
		{
			name:  "All Blank",
			input: "  \n\n  ",
			want:  []string{},
		},
		{
			name:  "Empty String",
			input: "",
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, models.SplitRequirements(tc.input))
		})
	}
}

func TestJobRefOf(t *testing.T) {
	t.Run("Nil Job", func(t *testing.T) {
		assert.Nil(t, models.JobRefOf(nil))
	})

	t.Run("Extracts Subset", func(t *testing.T) {
		job := &models.Job{
			ID:          uuid.New(),
			Title:       "Software Intern",
			Company:     "Acme Corp",
			Location:    "Toronto",
			Type:        "Internship",
			Salary:      "Student",
			Description: "not part of the ref",
		}
		ref := models.JobRefOf(job)
		require.NotNil(t, ref)
		assert.Equal(t, job.ID, ref.ID)
		assert.Equal(t, "Software Intern", ref.Title)
		assert.Equal(t, "Acme Corp", ref.Company)
		assert.Equal(t, "Internship", ref.Type)
	})
}

func TestApplicantRefOf(t *testing.T) {
	t.Run("Nil User", func(t *testing.T) {
		assert.Nil(t, models.ApplicantRefOf(nil))
	})

	t.Run("Extracts Subset", func(t *testing.T) {
		user := &models.User{
			ID:    uuid.New(),
			Name:  "Sam Student",
			Email: "sam@example.com",
			Phone: "555-0300",
		}
		ref := models.ApplicantRefOf(user)
		require.NotNil(t, ref)
		assert.Equal(t, user.ID, ref.ID)
		assert.Equal(t, "Sam Student", ref.Name)
		assert.Equal(t, "sam@example.com", ref.Email)
	})
}
