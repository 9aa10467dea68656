package hero

import (
	"context"
	"testing"

	"github.com/mx-space/folio/internal/database/dbtest"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestService_GetEmpty(t *testing.T) {
	svc := NewService(dbtest.New(t))

	h, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestService_CreateThenGet(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateHeroDTO{
		Name:     "Ada",
		Title:    "Engineer",
		GitHub:   "https://github.com/ada",
		LinkedIn: "https://linkedin.com/in/ada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "https://github.com/ada", got.GitHub)
	assert.Equal(t, "https://linkedin.com/in/ada", got.LinkedIn)
}

func TestService_SecondCreateConflicts(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateHeroDTO{Name: "A", Title: "T"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateHeroDTO{Name: "B", Title: "T"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_Update(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateHeroDTO{Name: "Ada", Title: "Engineer", Twitter: "@ada"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &UpdateHeroDTO{ID: created.ID, Title: strPtr("Architect"), Twitter: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "Architect", updated.Title)
	assert.Empty(t, updated.Twitter)
}

func TestService_UpdateErrors(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.Update(ctx, &UpdateHeroDTO{Name: strPtr("x")})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "ID required", apperr.Message(err, ""))

	_, err = svc.Update(ctx, &UpdateHeroDTO{ID: "missing", Name: strPtr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
