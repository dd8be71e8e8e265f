package database

import (
	"errors"
	"testing"
	"time"

	"github.com/example/genderbot/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, initializeSchema(db))
	return db
}

func seedNoun(t *testing.T, nouns *NounRepository, spanish, english string, gender models.Gender) *models.Noun {
	t.Helper()
	noun := &models.Noun{English: english, Spanish: spanish, Gender: gender}
	require.NoError(t, nouns.Create(noun))
	require.NotZero(t, noun.ID)
	return noun
}

func TestPlayerCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}

	require.NoError(t, players.Create(42))
	require.NoError(t, players.Create(42))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM players"))
	assert.Equal(t, 1, count)
}

func TestPlayerGetByTelegramIDAbsent(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}

	player, err := players.GetByTelegramID(42)
	require.NoError(t, err)
	assert.Nil(t, player)
}

func TestPlayerGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}

	created, err := players.GetOrCreate(42)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(42), created.TelegramID)

	again, err := players.GetOrCreate(42)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestNounGetRandomEmpty(t *testing.T) {
	db := newTestDB(t)
	nouns := &NounRepository{db: db}

	_, err := nouns.GetRandom()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNounCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	nouns := &NounRepository{db: db}

	created := seedNoun(t, nouns, "casa", "house", models.Feminine)

	got, err := nouns.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "casa", got.Spanish)
	assert.Equal(t, models.Feminine, got.Gender)

	random, err := nouns.GetRandom()
	require.NoError(t, err)
	assert.Equal(t, created.ID, random.ID)

	count, err := nouns.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNounGetByIDAbsent(t *testing.T) {
	db := newTestDB(t)
	nouns := &NounRepository{db: db}

	_, err := nouns.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttemptLifecycle(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}
	nouns := &NounRepository{db: db}
	attempts := &AttemptRepository{db: db}

	player, err := players.GetOrCreate(42)
	require.NoError(t, err)
	noun := seedNoun(t, nouns, "casa", "house", models.Feminine)

	id, err := attempts.Create(player.ID, noun.ID)
	require.NoError(t, err)

	open, err := attempts.GetOpenForPlayer(player.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, id, open.ID)
	assert.Equal(t, noun.ID, open.NounID)
	assert.True(t, open.Open())

	require.NoError(t, attempts.Close(id, true))

	closed, err := attempts.GetOpenForPlayer(player.ID)
	require.NoError(t, err)
	assert.Nil(t, closed)

	// closing again must not rewrite the stored result
	err = attempts.Close(id, false)
	assert.ErrorIs(t, err, ErrAttemptClosed)

	var answer bool
	require.NoError(t, db.Get(&answer, "SELECT answer FROM attempts WHERE id = ?", id))
	assert.True(t, answer)
}

func TestAttemptGetOpenPicksNewest(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}
	nouns := &NounRepository{db: db}
	attempts := &AttemptRepository{db: db}

	player, err := players.GetOrCreate(42)
	require.NoError(t, err)
	noun := seedNoun(t, nouns, "casa", "house", models.Feminine)

	_, err = attempts.Create(player.ID, noun.ID)
	require.NoError(t, err)
	second, err := attempts.Create(player.ID, noun.ID)
	require.NoError(t, err)

	open, err := attempts.GetOpenForPlayer(player.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, second, open.ID)
}

func TestAttemptDelete(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}
	nouns := &NounRepository{db: db}
	attempts := &AttemptRepository{db: db}

	player, err := players.GetOrCreate(42)
	require.NoError(t, err)
	noun := seedNoun(t, nouns, "casa", "house", models.Feminine)

	id, err := attempts.Create(player.ID, noun.ID)
	require.NoError(t, err)
	require.NoError(t, attempts.Delete(id))

	open, err := attempts.GetOpenForPlayer(player.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestStalePlayers(t *testing.T) {
	db := newTestDB(t)
	players := &PlayerRepository{db: db}
	nouns := &NounRepository{db: db}
	attempts := &AttemptRepository{db: db}

	stale, err := players.GetOrCreate(1)
	require.NoError(t, err)
	fresh, err := players.GetOrCreate(2)
	require.NoError(t, err)
	noun := seedNoun(t, nouns, "casa", "house", models.Feminine)

	// backdate one open attempt past the cutoff
	old := time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02 15:04:05")
	_, err = db.Exec("INSERT INTO attempts (player_id, noun_id, created_at) VALUES (?, ?, ?)",
		stale.ID, noun.ID, old)
	require.NoError(t, err)
	_, err = attempts.Create(fresh.ID, noun.ID)
	require.NoError(t, err)

	got, err := attempts.StalePlayers(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stale.ID, got[0].ID)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrAttemptClosed))
}
