package excel

import (
	"testing"

	"github.com/example/genderbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNounRepo struct {
	bySpanish map[string]*models.Noun
	nextID    int64
}

func newFakeNounRepo() *fakeNounRepo {
	return &fakeNounRepo{bySpanish: make(map[string]*models.Noun)}
}

func (f *fakeNounRepo) GetBySpanish(spanish string) (*models.Noun, error) {
	return f.bySpanish[spanish], nil
}

func (f *fakeNounRepo) Create(noun *models.Noun) error {
	f.nextID++
	noun.ID = f.nextID
	f.bySpanish[noun.Spanish] = noun
	return nil
}

func TestProcessRowCreatesNoun(t *testing.T) {
	repo := newFakeNounRepo()
	result := &ImportResult{}

	err := processRow([]string{"house", "casa", "Feminine"}, repo, result)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	noun := repo.bySpanish["casa"]
	require.NotNil(t, noun)
	assert.Equal(t, "house", noun.English)
	assert.Equal(t, models.Feminine, noun.Gender)
}

func TestProcessRowNormalizesGenderLabels(t *testing.T) {
	repo := newFakeNounRepo()
	result := &ImportResult{}

	require.NoError(t, processRow([]string{"book", "libro", "m"}, repo, result))
	require.NoError(t, processRow([]string{"water", "agua", " FEM "}, repo, result))

	assert.Equal(t, models.Masculine, repo.bySpanish["libro"].Gender)
	assert.Equal(t, models.Feminine, repo.bySpanish["agua"].Gender)
}

func TestProcessRowSkipsDuplicates(t *testing.T) {
	repo := newFakeNounRepo()
	result := &ImportResult{}

	require.NoError(t, processRow([]string{"house", "casa", "feminine"}, repo, result))
	require.NoError(t, processRow([]string{"home", "casa", "feminine"}, repo, result))

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	// the first import wins
	assert.Equal(t, "house", repo.bySpanish["casa"].English)
}

func TestProcessRowRejectsBadRows(t *testing.T) {
	repo := newFakeNounRepo()
	result := &ImportResult{}

	assert.Error(t, processRow([]string{"house", "casa"}, repo, result))
	assert.Error(t, processRow([]string{"", "casa", "feminine"}, repo, result))
	assert.Error(t, processRow([]string{"house", "", "feminine"}, repo, result))
	assert.Error(t, processRow([]string{"house", "casa", "purple"}, repo, result))

	assert.Equal(t, 0, result.Created)
	assert.Empty(t, repo.bySpanish)
}
