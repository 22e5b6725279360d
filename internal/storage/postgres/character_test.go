package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/scox/internal/game/catalogue"
	"github.com/cory-johannsen/scox/internal/game/character"
	"github.com/cory-johannsen/scox/internal/game/profile"
	"github.com/cory-johannsen/scox/internal/storage/postgres"
	"github.com/cory-johannsen/scox/internal/testutil"
)

func setupRepo(t *testing.T) *postgres.CharacterRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewCharacterRepository(pc.RawPool)
}

func newStoredCharacter(t *testing.T, name string) *character.Character {
	t.Helper()
	c, err := character.New(name, profile.NatureDemon, 0, catalogue.Default())
	require.NoError(t, err)
	combat, _ := c.Profile.PrimarySkills.Get("Combat")
	combat.Specialization.IncrementRank()
	c.Recompute()
	return c
}

func TestCharacterRepository_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	c := newStoredCharacter(t, "Abalam")
	require.NoError(t, repo.Create(ctx, c))
	require.NotEqual(t, uuid.Nil, c.ID)

	out, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abalam", out.Name)
	assert.Equal(t, profile.NatureDemon, out.Profile.Nature)

	// The snapshot round-trips the full graph, back-references included.
	combat, ok := out.Profile.PrimarySkills.Get("Combat")
	require.True(t, ok)
	require.NotNil(t, combat.Specialization)
	assert.Same(t, combat, combat.Specialization.Master)
	assert.Equal(t, 1, combat.Specialization.Rank)
	attr, _ := out.Profile.Attributes.Get(catalogue.AttrAgilite)
	assert.Same(t, attr, combat.Governing)
}

func TestCharacterRepository_DuplicateName(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStoredCharacter(t, "Abalam")))
	err := repo.Create(ctx, newStoredCharacter(t, "Abalam"))
	require.ErrorIs(t, err, postgres.ErrCharacterNameTaken)
}

func TestCharacterRepository_GetMissing(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, postgres.ErrCharacterNotFound)
}

func TestCharacterRepository_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newStoredCharacter(t, "Abalam")))
	require.NoError(t, repo.Create(ctx, newStoredCharacter(t, "Caym")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Abalam", list[0].Name)
	assert.Equal(t, "Demon", list[0].Nature)
}

func TestCharacterRepository_UpdateSnapshot(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	c := newStoredCharacter(t, "Abalam")
	require.NoError(t, repo.Create(ctx, c))

	force, _ := c.Profile.Attributes.Get(catalogue.AttrForce)
	force.IncreaseRank(2)
	c.Level = 1
	c.Recompute()
	require.NoError(t, repo.UpdateSnapshot(ctx, c))

	out, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Level)
	outForce, _ := out.Profile.Attributes.Get(catalogue.AttrForce)
	assert.Equal(t, 6, outForce.FullRank())
}

func TestCharacterRepository_UpdateMissing(t *testing.T) {
	repo := setupRepo(t)
	c := newStoredCharacter(t, "Abalam")
	c.ID = uuid.New()
	err := repo.UpdateSnapshot(context.Background(), c)
	require.ErrorIs(t, err, postgres.ErrCharacterNotFound)
}

func TestCharacterRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	c := newStoredCharacter(t, "Abalam")
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, postgres.ErrCharacterNotFound)
	require.ErrorIs(t, repo.Delete(ctx, c.ID), postgres.ErrCharacterNotFound)
}
