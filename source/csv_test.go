package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	data := strings.Join([]string{
		"id,title,genres",
		`3,Point Break,Action|Crime`,
		`4,"The Matrix, Reloaded",Action`,
	}, "\n")

	table, err := ReadCSV("movies", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "movies", table.Name)
	assert.Equal(t, []string{"id", "title", "genres"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Point Break", table.Rows[0].Get("title"))
	assert.Equal(t, "The Matrix, Reloaded", table.Rows[1].Get("title"))
	assert.Equal(t, "", table.Rows[0].Get("missing"))
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	data := "id,title,genres\n3,Heat\n"

	table, err := ReadCSV("movies", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Heat", table.Rows[0].Get("title"))
	assert.Equal(t, "", table.Rows[0].Get("genres"))
}

func TestReadCSV_LongRowFails(t *testing.T) {
	data := "id,title\n3,Heat,extra\n"

	_, err := ReadCSV("movies", strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV("movies", strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genres.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nAction\nComedy\n"), 0644))

	table, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, "genres", table.Name)
	assert.Len(t, table.Rows, 2)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	for _, name := range []string{
		filepath.Join(dir, "movies.csv"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(sub, "genres.csv"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("x\n"), 0644))
	}

	t.Run("doublestar matches nested files", func(t *testing.T) {
		paths, err := Discover([]string{filepath.Join(dir, "**", "*.csv")})
		require.NoError(t, err)
		assert.Len(t, paths, 2)
	})

	t.Run("overlapping patterns deduplicate", func(t *testing.T) {
		paths, err := Discover([]string{
			filepath.Join(dir, "*.csv"),
			filepath.Join(dir, "movies.*"),
		})
		require.NoError(t, err)
		assert.Len(t, paths, 1)
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		paths, err := Discover([]string{filepath.Join(dir, "*.json")})
		require.NoError(t, err)
		assert.Empty(t, paths)
	})
}
