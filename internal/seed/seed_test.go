package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"movieapi/internal/seed"
	"movieapi/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCollectionIsValid(t *testing.T) {
	movies, err := seed.Load("", validation.NewMovieValidator())
	require.NoError(t, err)
	require.NotEmpty(t, movies)

	ids := make(map[string]bool)
	for _, m := range movies {
		assert.NotEmpty(t, m.ID)
		assert.False(t, ids[m.ID], "duplicate id %s", m.ID)
		ids[m.ID] = true
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	body := `[{"title":"Alien","year":1979,"director":"Ridley Scott","duration":117,
		"poster":"https://example.com/alien.jpg","genre":["Horror","Sci-Fi"]}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	movies, err := seed.Load(path, validation.NewMovieValidator())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Empty(t, movies[0].ID, "store assigns the id")
	assert.Zero(t, movies[0].Rate)
}

func TestParse_Rejects(t *testing.T) {
	v := validation.NewMovieValidator()

	tests := map[string]string{
		"not an array":  `{"title":"x"}`,
		"invalid movie": `[{"title":"Alien"}]`,
		"bad id": `[{"id":"nope","title":"Alien","year":1979,"director":"Ridley Scott","duration":117,
			"poster":"https://example.com/alien.jpg","genre":["Horror"]}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := seed.Parse([]byte(body), v)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := seed.Load(filepath.Join(t.TempDir(), "missing.json"), validation.NewMovieValidator())
	assert.Error(t, err)
}
