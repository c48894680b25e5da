package builder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/pelletier/go-toml/v2"
	"github.com/pigeonnation/xbuild/internal/msg"
)

// ConfigFilename is looked up in the project root; a missing file just means
// the built-in toolchain table.
const ConfigFilename = "xbuild.toml"

type Config struct {
	Project   ProjectSection              `toml:"project"`
	Toolchain map[string]ToolchainSection `toml:"toolchain"`
}

// ProjectSection defines the [project] section
type ProjectSection struct {
	Name     string   `toml:"name"`
	BuildDir string   `toml:"build-dir"`
	Sources  []string `toml:"sources"`
	Stamp    bool     `toml:"stamp"`
}

// ToolchainSection defines a [toolchain.<target>] override section
type ToolchainSection struct {
	Prefix    string   `toml:"prefix"`
	CC        string   `toml:"cc"`
	CXX       string   `toml:"cxx"`
	CFlags    []string `toml:"cflags"`
	CXXFlags  []string `toml:"cxxflags"`
	ArchFlags []string `toml:"arch-flags"`
	Ldflags   []string `toml:"ldflags"`
	DLLDir    string   `toml:"dll-dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Project: ProjectSection{
			Name:     "main",
			BuildDir: "build",
			Sources:  []string{"src/**/*.cpp", "src/**/*.c"},
			Stamp:    true,
		},
	}
}

// Toolchains resolves the final build targets: built-in descriptors with the
// config's override sections merged in. Sections naming an unknown target are
// warned about and dropped.
func (c *Config) Toolchains() []Toolchain {
	tcs := defaultToolchains()
	known := make(map[string]bool, len(tcs))
	for i := range tcs {
		known[tcs[i].Name] = true
		if sec, ok := c.Toolchain[tcs[i].Name]; ok {
			tcs[i].applyOverrides(sec)
		}
	}
	for name := range c.Toolchain {
		if !known[name] {
			msg.Warn("unknown toolchain %q in config (expected macos, windows or linux)", name)
		}
	}
	return tcs
}

// ConfigEnv is the environment visible to {{ ... }} expressions in config
// values.
type ConfigEnv struct {
	HostOS   string            `expr:"host_os"`
	HostArch string            `expr:"host_arch"`
	Environ  map[string]string `expr:"environ"`
}

func NewConfigEnv() ConfigEnv {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			environ[e[:i]] = e[i+1:]
		}
	}

	return ConfigEnv{
		HostOS:   runtime.GOOS,
		HostArch: runtime.GOARCH,
		Environ:  environ,
	}
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// evaluateString finds and evaluates all {{...}} expressions in a string
func evaluateString(s string, env ConfigEnv) (string, error) {
	matches := exprRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var builder strings.Builder
	lastIndex := 0

	for _, m := range matches {
		builder.WriteString(s[lastIndex:m[0]])

		expression := strings.TrimSpace(s[m[2]:m[3]])
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return "", fmt.Errorf("failed to compile expression %q: %w", expression, err)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("failed to run expression %q: %w", expression, err)
		}

		builder.WriteString(fmt.Sprintf("%v", result))
		lastIndex = m[1]
	}

	builder.WriteString(s[lastIndex:])

	return builder.String(), nil
}

// processExpressions recursively walks the parsed TOML data and evaluates
// expressions in strings
func processExpressions(data any, env ConfigEnv) (any, error) {
	switch v := data.(type) {
	case map[string]any:
		for key, val := range v {
			processed, err := processExpressions(val, env)
			if err != nil {
				return nil, err
			}
			v[key] = processed
		}
		return v, nil
	case []any:
		for i, item := range v {
			processed, err := processExpressions(item, env)
			if err != nil {
				return nil, err
			}
			v[i] = processed
		}
		return v, nil
	case string:
		return evaluateString(v, env)
	default:
		return data, nil
	}
}

func mustMarshal(v any) string {
	b, err := toml.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// unmarshalSection re-marshals one section of the raw config into dst,
// leaving dst's preset defaults alone when the section is absent
func unmarshalSection(rawCfg map[string]any, name string, dst any) error {
	if data, ok := rawCfg[name]; ok {
		if err := toml.Unmarshal([]byte(mustMarshal(data)), dst); err != nil {
			return fmt.Errorf("failed to parse [%s] section: %w", name, err)
		}
	}
	return nil
}

func ParseConfig(rdr io.Reader, env ConfigEnv) (*Config, error) {
	var rawConfig map[string]any
	dec := toml.NewDecoder(rdr)
	if err := dec.Decode(&rawConfig); err != nil {
		if derr, ok := err.(*toml.DecodeError); ok {
			return nil, errors.New(derr.String())
		}
		return nil, err
	}

	processed, err := processExpressions(rawConfig, env)
	if err != nil {
		return nil, fmt.Errorf("error processing expressions in config: %w", err)
	}
	rawConfig = processed.(map[string]any)

	cfg := DefaultConfig()

	if err := unmarshalSection(rawConfig, "project", &cfg.Project); err != nil {
		return nil, err
	}
	if err := unmarshalSection(rawConfig, "toolchain", &cfg.Toolchain); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseConfigFromFile parses a config file. A missing file is not an error:
// the defaults reproduce the fixed toolchain table.
func ParseConfigFromFile(path string, env ConfigEnv) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseConfig(bufio.NewReader(f), env)
}
