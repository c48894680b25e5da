package builder

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/pigeonnation/xbuild/internal/msg"
)

// runCommand executes one external process with dir as its working
// directory, blocking until it exits. Combined output is captured and
// replayed indented, on success and on failure alike. One process runs at a
// time; compiles are sequential by construction.
func runCommand(dir, name string, args ...string) error {
	msg.Command(append([]string{name}, args...))

	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if out.Len() > 0 {
		iw := &msg.IndentWriter{Indent: "  ", W: os.Stdout}
		iw.Write(out.Bytes())
	}

	if err == nil {
		return nil
	}

	// LookPath misses report ErrNotFound; absolute toolchain paths that
	// don't exist come back as a PathError from Start
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s not found; is the toolchain installed at that path?", name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with code %d", name, exitErr.ExitCode())
	}
	return err
}
