package builder

import (
	git "github.com/go-git/go-git/v6"
)

// headCommit returns the abbreviated HEAD commit of the repository
// containing dir, searching parent directories like the git CLI does.
func headCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", err
	}

	return head.Hash().String()[:7], nil
}

// stampDefines builds the preprocessor defines identifying this build.
// Outside a git repository (or on an unborn HEAD) there is nothing to stamp
// and no define is emitted.
func stampDefines(dir string) []string {
	commit, err := headCommit(dir)
	if err != nil {
		return nil
	}
	return []string{`-DXBUILD_COMMIT="` + commit + `"`}
}
