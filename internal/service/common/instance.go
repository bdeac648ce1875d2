//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning indicates another process owns the devices.
var ErrAlreadyRunning = errors.New("another instance is already running")

// processLister returns the running processes. It is replaced in tests.
//
//nolint:gochecknoglobals // Seam for tests; production always uses go-ps.
var processLister = ps.Processes

// EnsureSingleInstance fails with ErrAlreadyRunning when another process with the
// same executable name as this one is running. Only one controller may drive the
// indicator and the stepper at a time.
func EnsureSingleInstance() error {
	return ensureSingleInstance(CurrentExecutable(), os.Getpid())
}

// CurrentExecutable returns the executable name of this process as reported by the OS.
func CurrentExecutable() string {
	return filepath.Base(os.Args[0])
}

func ensureSingleInstance(executable string, selfPID int) error {
	processList, err := processLister()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		if !sameExecutable(process.Executable(), executable) {
			continue
		}

		return fmt.Errorf("%w: %s (pid %d)", ErrAlreadyRunning, process.Executable(), process.Pid())
	}

	return nil
}

// sameExecutable compares names the way the OS reports them: case-insensitive on
// Windows, and truncated to 15 characters by the Linux process table.
func sameExecutable(reported, executable string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(reported, executable)
	}

	const linuxCommLength = 15
	if runtime.GOOS == "linux" && len(executable) > linuxCommLength {
		executable = executable[:linuxCommLength]
	}

	return reported == executable
}
