package about

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mx-space/folio/internal/database/dbtest"
	"github.com/mx-space/folio/internal/models"
	"github.com/mx-space/folio/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skillView struct {
	Name string
	Icon models.SkillIcon
}

func view(skills []models.Skill) []skillView {
	out := make([]skillView, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillView{Name: s.Name, Icon: s.Icon})
	}
	return out
}

func TestService_CreateWithSkills(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateAboutDTO{
		Title:       "About me",
		Description: "<p>Hi</p><script>x()</script>",
		Skills: []SkillInput{
			{Name: "Go", Icon: "server"},
			{Name: "SQL", Icon: "Database"},
			{Name: "Writing"},
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "<p>Hi</p>", got.Description)

	want := []skillView{
		{"Go", models.IconServer},
		{"SQL", models.IconDatabase},
		{"Writing", ""},
	}
	if diff := cmp.Diff(want, view(got.Skills)); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestService_CreateRejectsUnknownIcon(t *testing.T) {
	svc := NewService(dbtest.New(t))

	_, err := svc.Create(context.Background(), &CreateAboutDTO{
		Title:  "About",
		Skills: []SkillInput{{Name: "Rust", Icon: "Crab"}},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_UpdateReplacesSkills(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateAboutDTO{
		Title:  "About",
		Skills: []SkillInput{{Name: "HTML", Icon: "Html5"}, {Name: "CSS", Icon: "Css3"}},
	})
	require.NoError(t, err)

	// Skills omitted: untouched.
	title := "Bio"
	updated, err := svc.Update(ctx, &UpdateAboutDTO{ID: created.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Bio", updated.Title)
	assert.Len(t, updated.Skills, 2)

	// Skills present: full replace.
	next := []SkillInput{{Name: "React", Icon: "react"}}
	updated, err = svc.Update(ctx, &UpdateAboutDTO{ID: created.ID, Skills: &next})
	require.NoError(t, err)
	assert.Equal(t, []skillView{{"React", models.IconReact}}, view(updated.Skills))

	// Skills present but empty: cleared.
	empty := []SkillInput{}
	updated, err = svc.Update(ctx, &UpdateAboutDTO{ID: created.ID, Skills: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Skills)
}

func TestService_UpdateKeepsSubmittedSkillIDs(t *testing.T) {
	svc := NewService(dbtest.New(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateAboutDTO{Title: "About", Skills: []SkillInput{{Name: "Go"}}})
	require.NoError(t, err)
	keep := created.Skills[0].ID

	next := []SkillInput{{ID: keep, Name: "Go"}, {Name: "Docker", Icon: "layers"}}
	updated, err := svc.Update(ctx, &UpdateAboutDTO{ID: created.ID, Skills: &next})
	require.NoError(t, err)
	require.Len(t, updated.Skills, 2)
	assert.Equal(t, keep, updated.Skills[0].ID)
	assert.NotEmpty(t, updated.Skills[1].ID)
}

func TestService_UpdateValidation(t *testing.T) {
	svc := NewService(dbtest.New(t))

	_, err := svc.Update(context.Background(), &UpdateAboutDTO{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Update(context.Background(), &UpdateAboutDTO{ID: "missing"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_SkillIDOwnedByAnotherRowConflicts(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	ctx := context.Background()

	other := models.About{Slot: "archived", Title: "Old", Skills: []models.Skill{{Name: "Perl"}}}
	require.NoError(t, db.Create(&other).Error)
	stolen := other.Skills[0].ID

	_, err := svc.Create(ctx, &CreateAboutDTO{Title: "About", Skills: []SkillInput{{ID: stolen, Name: "Go"}}})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "failed create leaves no row behind")

	created, err := svc.Create(ctx, &CreateAboutDTO{Title: "About", Skills: []SkillInput{{Name: "Go"}}})
	require.NoError(t, err)
	next := []SkillInput{{ID: stolen, Name: "Rust"}}
	_, err = svc.Update(ctx, &UpdateAboutDTO{ID: created.ID, Skills: &next})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var skill models.Skill
	require.NoError(t, db.First(&skill, "id = ?", stolen).Error)
	assert.Equal(t, other.ID, skill.AboutID)
	assert.Equal(t, "Perl", skill.Name)
}
