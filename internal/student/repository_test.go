package student_test

import (
	"context"
	"testing"

	"student-records-service/internal/student"
	"student-records-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Shared(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer := testutil.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*student.Student)(nil))

	repo := student.NewRepository(pgContainer.DB)

	create := func(t *testing.T, code, major, status string, gpa *float64) *student.Student {
		t.Helper()
		created, err := repo.Create(ctx, &student.Student{
			StudentCode: code,
			FirstName:   "Test",
			LastName:    "Student",
			Email:       code + "@example.com",
			Major:       major,
			GPA:         gpa,
			Status:      status,
		})
		require.NoError(t, err)
		return created
	}

	t.Run("Create_AssignsIDAndDefaults", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")

		created, err := repo.Create(ctx, &student.Student{
			StudentCode: "2024010001",
			FirstName:   "Jane",
			LastName:    "Doe",
			Email:       "jane@example.com",
			Major:       student.MajorCS,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, created.ID)
		assert.Equal(t, student.StatusActive, created.Status)
		assert.Nil(t, created.GPA)
	})

	t.Run("FindAll_Filters", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")
		create(t, "2024010001", student.MajorCS, student.StatusActive, nil)
		create(t, "2024010002", student.MajorCS, student.StatusGraduated, nil)
		create(t, "2024010003", student.MajorSE, student.StatusActive, nil)

		all, err := repo.FindAll(ctx, student.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		cs, err := repo.FindAll(ctx, student.ListFilter{Major: student.MajorCS})
		require.NoError(t, err)
		assert.Len(t, cs, 2)

		csActive, err := repo.FindAll(ctx, student.ListFilter{Major: student.MajorCS, Status: student.StatusActive})
		require.NoError(t, err)
		require.Len(t, csActive, 1)
		assert.Equal(t, "2024010001", csActive[0].StudentCode)
	})

	t.Run("FindByID_NotFound", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")

		_, err := repo.FindByID(ctx, 42)

		var notFoundErr *student.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, 42, notFoundErr.ID)
	})

	t.Run("Update_MergesOnlyProvidedFields", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")
		created := create(t, "2024010001", student.MajorCS, student.StatusActive, floatPtr(3.5))

		email := "changed@example.com"
		updated, err := repo.Update(ctx, created.ID, student.UpdateStudentRequest{Email: &email})
		require.NoError(t, err)

		assert.Equal(t, email, updated.Email)
		assert.Equal(t, "2024010001", updated.StudentCode)
		assert.Equal(t, student.MajorCS, updated.Major)
		require.NotNil(t, updated.GPA)
		assert.Equal(t, 3.5, *updated.GPA)
	})

	t.Run("Update_EmptyRequestReturnsCurrentRecord", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")
		created := create(t, "2024010001", student.MajorCS, student.StatusActive, nil)

		updated, err := repo.Update(ctx, created.ID, student.UpdateStudentRequest{})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "2024010001", updated.StudentCode)
	})

	t.Run("Update_VanishedRowReportsNotFound", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")

		email := "ghost@example.com"
		_, err := repo.Update(ctx, 42, student.UpdateStudentRequest{Email: &email})

		var notFoundErr *student.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("UpdateGPA", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")
		created := create(t, "2024010001", student.MajorCS, student.StatusActive, nil)

		updated, err := repo.UpdateGPA(ctx, created.ID, 3.75)
		require.NoError(t, err)

		require.NotNil(t, updated.GPA)
		assert.Equal(t, 3.75, *updated.GPA)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")
		created := create(t, "2024010001", student.MajorCS, student.StatusActive, nil)

		updated, err := repo.UpdateStatus(ctx, created.ID, student.StatusGraduated)
		require.NoError(t, err)

		assert.Equal(t, student.StatusGraduated, updated.Status)
	})

	t.Run("Delete", func(t *testing.T) {
		testutil.CleanupTables(t, pgContainer.DB, "students")
		created := create(t, "2024010001", student.MajorCS, student.StatusGraduated, nil)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err := repo.FindByID(ctx, created.ID)
		var notFoundErr *student.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)

		err = repo.Delete(ctx, created.ID)
		require.ErrorAs(t, err, &notFoundErr)
	})
}
