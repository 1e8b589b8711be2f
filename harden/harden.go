// Copyright (c) 2020-present devguard GmbH

// Package harden makes the daemon hard to starve or kill.
// Everything in here is best effort.
package harden

import (
	"errors"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

const (
	NullPath        = "/dev/null"
	TaskDir         = "/proc/self/task"
	OOMScoreAdjPath = "/proc/self/oom_score_adj"

	Priority   = -19
	OOMDisable = -1000
)

// Umask sets the file mode creation mask and returns the previous one.
func Umask(mask int) int {
	return unix.Umask(mask)
}

// RedirectStdio points stdin, stdout and stderr at path.
func RedirectStdio(path string) error {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return err
	}

	var errs []error
	for n := 0; n <= 2; n++ {
		if n == fd {
			continue
		}
		if err := unix.Dup3(fd, n, 0); err != nil {
			errs = append(errs, err)
		}
	}

	if fd > 2 {
		unix.Close(fd)
	}
	return errors.Join(errs...)
}

// Renice sets prio on every thread listed in taskDir.
// Linux keeps nice values per thread, and the runtime already runs several.
func Renice(taskDir string, prio int) error {
	entries, err := os.ReadDir(taskDir)
	if err != nil {
		return unix.Setpriority(unix.PRIO_PROCESS, 0, prio)
	}

	var errs []error
	for _, e := range entries {
		tid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		// threads may exit while we walk the list
		if err := unix.Setpriority(unix.PRIO_PROCESS, tid, prio); err != nil && err != unix.ESRCH {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DisableOOMKill writes the minimum OOM score adjustment to path.
func DisableOOMKill(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(strconv.Itoa(OOMDisable))
	return err
}
