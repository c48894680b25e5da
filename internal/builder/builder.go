package builder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/pigeonnation/xbuild/internal/msg"
)

var errNoSources = errors.New("no source files found")

const winpthreadDLL = "libwinpthread-1.dll"

type Builder struct {
	cfg     *Config
	basedir string
}

func NewBuilderInDirectory(path string) (*Builder, error) {
	var err error
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfigFromFile(filepath.Join(path, ConfigFilename), NewConfigEnv())
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, basedir: path}, nil
}

// Build runs the three target pipelines in fixed order. A target with no
// sources is warned about and skipped; any subprocess failure aborts the
// whole run, even when earlier targets already linked.
func (b *Builder) Build() error {
	buildDir := filepath.Join(b.basedir, b.cfg.Project.BuildDir)
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return err
	}

	var defines []string
	if b.cfg.Project.Stamp {
		defines = stampDefines(b.basedir)
	}

	for _, tc := range b.cfg.Toolchains() {
		if err := b.buildTarget(&tc, defines); err != nil {
			if errors.Is(err, errNoSources) {
				msg.Warn("%s: %v", tc.Name, err)
				continue
			}
			return fmt.Errorf("%s: %w", tc.Name, err)
		}
	}
	return nil
}

// buildTarget compiles every discovered source with the target's toolchain
// and links the objects into one executable. Compiles run one at a time;
// objects are never reused across runs.
func (b *Builder) buildTarget(tc *Toolchain, defines []string) error {
	msg.Info("building %s target", tc.Name)

	outDir := filepath.Join(b.cfg.Project.BuildDir, tc.Name)
	if err := os.MkdirAll(filepath.Join(b.basedir, outDir), 0755); err != nil {
		return err
	}

	sources, err := CollectSources(b.basedir, b.cfg.Project.Sources)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return errNoSources
	}

	var objects []string
	for _, src := range sources {
		compiler, flags, ok := tc.pick(src)
		if !ok {
			msg.Warn("skipping unknown file type: %s", src)
			continue
		}

		obj := filepath.Join(outDir, filepath.Base(src)+".o")
		args := slices.Concat(flags, tc.ArchFlags, defines, []string{"-c", src, "-o", obj})
		if err := runCommand(b.basedir, compiler, args...); err != nil {
			return fmt.Errorf("compile %s: %w", src, err)
		}
		objects = append(objects, obj)
	}

	if len(objects) == 0 {
		return fmt.Errorf("%w (every match was skipped)", errNoSources)
	}

	out := filepath.Join(outDir, b.cfg.Project.Name+tc.ExeSuffix)
	args := slices.Concat(objects, tc.ArchFlags, tc.Ldflags, []string{"-o", out})
	if err := runCommand(b.basedir, tc.CXX, args...); err != nil {
		return fmt.Errorf("link %s: %w", out, err)
	}

	msg.Info("built %s executable: %s", tc.Name, filepath.ToSlash(out))

	if tc.DLLDir != "" {
		b.copyRuntimeDLL(tc, outDir)
	}
	return nil
}

// copyRuntimeDLL ships the MinGW pthread DLL next to the Windows executable.
// A missing DLL is a warning, not a failure: the statically linked runtime
// usually makes it unnecessary.
func (b *Builder) copyRuntimeDLL(tc *Toolchain, outDir string) {
	dllDir := tc.DLLDir
	if !filepath.IsAbs(dllDir) {
		dllDir = filepath.Join(b.basedir, dllDir)
	}

	src := filepath.Join(dllDir, winpthreadDLL)
	dst := filepath.Join(b.basedir, outDir, winpthreadDLL)
	if err := copyFile(src, dst); err != nil {
		msg.Warn("could not copy %s: %v (the executable may need it at runtime)", winpthreadDLL, err)
		return
	}
	msg.Info("copied %s to %s", winpthreadDLL, filepath.ToSlash(outDir))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Clean removes the whole build directory tree. Cleaning an already-clean
// project is a no-op with a message.
func (b *Builder) Clean() error {
	buildDir := filepath.Join(b.basedir, b.cfg.Project.BuildDir)
	if _, err := os.Stat(buildDir); os.IsNotExist(err) {
		msg.Info("build directory not found: %s", b.cfg.Project.BuildDir)
		return nil
	}

	if err := os.RemoveAll(buildDir); err != nil {
		return err
	}
	msg.Info("removed directory: %s", b.cfg.Project.BuildDir)
	return nil
}
