package service

import (
	"context"
	"testing"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestTagService_EnsureExists_DeduplicatesBatch(t *testing.T) {
	t.Parallel()

	repo := noopTagRepo()
	var calls []string
	repo.upsertFn = func(_ context.Context, name string) (*models.Tag, error) {
		calls = append(calls, name)
		return &models.Tag{Name: name, UsageCount: 1}, nil
	}

	svc := NewTagService(repo)
	tags, err := svc.EnsureExists(context.Background(), []string{"Go", "go ", " GO"})
	require.NoError(t, err)

	// three spellings of one tag collapse to a single association event
	assert.Equal(t, []string{"go"}, calls)
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Name)
}

func TestTagService_EnsureExists_RepeatedCallsCountEachTime(t *testing.T) {
	t.Parallel()

	repo := noopTagRepo()
	usage := map[string]int64{}
	repo.upsertFn = func(_ context.Context, name string) (*models.Tag, error) {
		usage[name]++
		return &models.Tag{Name: name, UsageCount: usage[name]}, nil
	}

	svc := NewTagService(repo)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.EnsureExists(ctx, []string{"Go"})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), usage["go"])
}

func TestTagService_EnsureExists_PreservesBatchOrder(t *testing.T) {
	t.Parallel()

	repo := noopTagRepo()
	var calls []string
	repo.upsertFn = func(_ context.Context, name string) (*models.Tag, error) {
		calls = append(calls, name)
		return &models.Tag{Name: name}, nil
	}

	svc := NewTagService(repo)
	_, err := svc.EnsureExists(context.Background(), []string{"Databases", "go", "databases", "Testing"})
	require.NoError(t, err)

	assert.Equal(t, []string{"databases", "go", "testing"}, calls)
}

func TestTagService_EnsureExists_EmptyBatch(t *testing.T) {
	t.Parallel()

	svc := NewTagService(noopTagRepo())
	ctx := context.Background()

	t.Run("no names", func(t *testing.T) {
		t.Parallel()
		_, err := svc.EnsureExists(ctx, nil)
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("only blanks", func(t *testing.T) {
		t.Parallel()
		_, err := svc.EnsureExists(ctx, []string{"  ", ""})
		assertAppErrCode(t, err, models.CodeValidation)
	})
}

func TestTagService_Rename_Conflict(t *testing.T) {
	t.Parallel()

	repo := noopTagRepo()
	repo.renameFn = func(_ context.Context, _, name string) (*models.Tag, error) {
		return nil, models.NewConflictError("tag name already in use: " + name)
	}

	svc := NewTagService(repo)
	_, err := svc.Rename(context.Background(), "507f1f77bcf86cd799439011", "Taken")
	assertAppErrCode(t, err, models.CodeConflict)
}

func TestTagService_Rename_NormalizesTarget(t *testing.T) {
	t.Parallel()

	repo := noopTagRepo()
	var gotName string
	repo.renameFn = func(_ context.Context, _, name string) (*models.Tag, error) {
		gotName = name
		return &models.Tag{Name: name}, nil
	}

	svc := NewTagService(repo)
	tag, err := svc.Rename(context.Background(), "507f1f77bcf86cd799439011", "  GoLang ")
	require.NoError(t, err)
	assert.Equal(t, "golang", gotName)
	assert.Equal(t, "golang", tag.Name)
}

func TestTagService_Rename_EmptyName(t *testing.T) {
	t.Parallel()

	svc := NewTagService(noopTagRepo())
	_, err := svc.Rename(context.Background(), "507f1f77bcf86cd799439011", "   ")
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestTagService_FindByName_Normalizes(t *testing.T) {
	t.Parallel()

	repo := noopTagRepo()
	var gotName string
	repo.getByNameFn = func(_ context.Context, name string) (*models.Tag, error) {
		gotName = name
		return &models.Tag{Name: name}, nil
	}

	svc := NewTagService(repo)
	_, err := svc.FindByName(context.Background(), " Rust ")
	require.NoError(t, err)
	assert.Equal(t, "rust", gotName)
}
