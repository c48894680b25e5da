package builder

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(""), NewConfigEnv())
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Project.Name)
	assert.Equal(t, "build", cfg.Project.BuildDir)
	assert.Equal(t, []string{"src/**/*.cpp", "src/**/*.c"}, cfg.Project.Sources)
	assert.True(t, cfg.Project.Stamp)
	assert.Len(t, cfg.Toolchains(), 3)
}

func TestParseConfigFromMissingFile(t *testing.T) {
	cfg, err := ParseConfigFromFile(filepath.Join(t.TempDir(), ConfigFilename), NewConfigEnv())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Project, cfg.Project)
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
[project]
name = "demo"
stamp = false

[toolchain.windows]
prefix = "/usr/local/bin/x86_64-w64-mingw32"
dll-dir = "dlls"

[toolchain.macos]
arch-flags = ["-arch", "arm64"]
`), NewConfigEnv())
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Project.Name)
	assert.False(t, cfg.Project.Stamp)
	// unset keys keep their defaults
	assert.Equal(t, "build", cfg.Project.BuildDir)

	tcs := cfg.Toolchains()
	require.Len(t, tcs, 3)

	macos, windows := tcs[0], tcs[1]
	assert.Equal(t, []string{"-arch", "arm64"}, macos.ArchFlags)
	assert.Equal(t, "clang++", macos.CXX)

	assert.Equal(t, "/usr/local/bin/x86_64-w64-mingw32-gcc", windows.CC)
	assert.Equal(t, "/usr/local/bin/x86_64-w64-mingw32-g++", windows.CXX)
	assert.Equal(t, "dlls", windows.DLLDir)
	assert.Equal(t, []string{"-static-libstdc++", "-static-libgcc"}, windows.Ldflags)
}

func TestParseConfigExpressions(t *testing.T) {
	t.Setenv("XBUILD_TEST_PREFIX", "/cross/bin/x86_64-w64-mingw32")

	cfg, err := ParseConfig(strings.NewReader(`
[project]
name = "app-{{ host_os }}"

[toolchain.windows]
prefix = "{{ environ.XBUILD_TEST_PREFIX }}"
`), NewConfigEnv())
	require.NoError(t, err)

	assert.Equal(t, "app-"+runtime.GOOS, cfg.Project.Name)
	assert.Equal(t, "/cross/bin/x86_64-w64-mingw32-g++", cfg.Toolchains()[1].CXX)
}

func TestParseConfigBadExpression(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`
[project]
name = "{{ no_such_var }}"
`), NewConfigEnv())
	require.Error(t, err)
}

func TestToolchainsUnknownSectionIgnored(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
[toolchain.freebsd]
cc = "cc"
`), NewConfigEnv())
	require.NoError(t, err)

	tcs := cfg.Toolchains()
	require.Len(t, tcs, 3)
	for _, tc := range tcs {
		assert.NotEqual(t, "freebsd", tc.Name)
	}
}
