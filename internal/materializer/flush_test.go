package materializer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushWritesTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")
	docs := map[string][]byte{
		"api/meta.json":               []byte("{}\n"),
		"api/federal/latest.json":     []byte("latest\n"),
		"api/federal/1/index.json":    []byte("one\n"),
		"api/federal/1/result/1.json": []byte("prize\n"),
		"index.html":                  []byte("<html></html>\n"),
	}

	require.NoError(t, Flush(root, docs))

	for p, want := range docs {
		got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
		require.NoError(t, err, p)
		assert.Equal(t, want, got, p)
	}
}

func TestFlushReplacesPreviousTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")

	require.NoError(t, Flush(root, map[string][]byte{
		"api/federal/99/index.json": []byte("stale\n"),
		"api/meta.json":             []byte("{}\n"),
	}))
	require.NoError(t, Flush(root, map[string][]byte{
		"api/federal/100/index.json": []byte("fresh\n"),
		"api/meta.json":              []byte("{}\n"),
	}))

	_, err := os.Stat(filepath.Join(root, "api", "federal", "99"))
	assert.True(t, os.IsNotExist(err), "stale contest must not survive a rebuild")

	got, err := os.ReadFile(filepath.Join(root, "api", "federal", "100", "index.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh\n"), got)
}

func TestFlushLeavesNoResidue(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "public")

	require.NoError(t, Flush(root, map[string][]byte{"api/meta.json": []byte("{}\n")}))
	require.NoError(t, Flush(root, map[string][]byte{"api/meta.json": []byte("{}\n")}))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no staging or retired directories may remain")
	assert.Equal(t, "public", entries[0].Name())
}

func TestWriteDoc(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteDoc(root, "api/federal/latest.json", []byte("doc\n")))

	got, err := os.ReadFile(filepath.Join(root, "api", "federal", "latest.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte("doc\n"), got)
}
