package builder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestRepo(t *testing.T, dir string) string {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("hello\n"), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestHeadCommit(t *testing.T) {
	dir := t.TempDir()
	full := initTestRepo(t, dir)

	got, err := headCommit(dir)
	require.NoError(t, err)
	assert.Equal(t, full[:7], got)
}

func TestHeadCommitFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	full := initTestRepo(t, dir)

	sub := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, err := headCommit(sub)
	require.NoError(t, err)
	assert.Equal(t, full[:7], got)
}

func TestStampDefines(t *testing.T) {
	dir := t.TempDir()
	full := initTestRepo(t, dir)

	defines := stampDefines(dir)
	require.Len(t, defines, 1)
	assert.Equal(t, `-DXBUILD_COMMIT="`+full[:7]+`"`, defines[0])
}

func TestStampDefinesOutsideRepository(t *testing.T) {
	assert.Nil(t, stampDefines(t.TempDir()))
}
