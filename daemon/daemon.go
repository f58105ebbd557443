package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sevlyar/go-daemon"
)

const (
	// DaemonEnvVar is the environment variable that marks a daemon child process
	DaemonEnvVar = "ALLSCREENSHOTS_DAEMON_CHILD"
)

// Files are the pid and log files of a detached watcher.
type Files struct {
	PidFile string
	LogFile string
}

// FilesIn places watch.pid and watch.log in dir.
func FilesIn(dir string) Files {
	return Files{
		PidFile: filepath.Join(dir, "watch.pid"),
		LogFile: filepath.Join(dir, "watch.log"),
	}
}

// Daemonize detaches the process and returns the child process handle
// If the returned process is nil, this is the child process and release
// must be called on exit to drop the pid file
// If the returned process is non-nil, this is the parent process
func Daemonize(files Files) (child *os.Process, release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(files.PidFile), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	// the child keeps the caller's working directory so relative output
	// paths resolve the same way
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	ctx := &daemon.Context{
		PidFileName: files.PidFile,
		PidFilePerm: 0644,
		LogFileName: files.LogFile,
		LogFilePerm: 0640,
		WorkDir:     wd,
		Umask:       027,
		Args:        os.Args,
		Env:         append(os.Environ(), fmt.Sprintf("%s=1", DaemonEnvVar)),
	}

	child, err = ctx.Reborn()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to daemonize: %w", err)
	}
	if child != nil {
		return child, func() {}, nil
	}

	return nil, func() { _ = ctx.Release() }, nil
}

// IsChild returns true if this is the daemon child process
func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}

// Stop sends SIGTERM to the detached watcher recorded in the pid file.
func Stop(files Files) (int, error) {
	pid, err := daemon.ReadPidFile(files.PidFile)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("no detached watch is running")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read pid file %s: %w", files.PidFile, err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("failed to find process %d: %w", pid, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			_ = os.Remove(files.PidFile)
			return 0, fmt.Errorf("watch process %d is no longer running", pid)
		}
		return 0, fmt.Errorf("failed to stop watch process %d: %w", pid, err)
	}

	return pid, nil
}
