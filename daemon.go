// Copyright (c) 2020-present devguard GmbH

package main

import (
	"errors"
	"os"

	"github.com/kraudcloud/watchdogd/harden"
	"github.com/kraudcloud/watchdogd/klog"
	"github.com/kraudcloud/watchdogd/watchdog"
	"github.com/sirupsen/logrus"
)

func main_daemon(args []string) int {
	harden.Umask(0077)
	harden.RedirectStdio(harden.NullPath)

	log := klog.New(klog.Path, os.Stderr)

	harden.Renice(harden.TaskDir, harden.Priority)
	if err := harden.DisableOOMKill(harden.OOMScoreAdjPath); err != nil {
		reportOOM(log, harden.OOMScoreAdjPath, err)
	}

	log.Info("Starting watchdogd")

	cfg := parseArgs(args, log)

	return daemon(log, cfg, watchdog.DevicePath, openDevice, watchdog.RealClock{})
}

// daemon opens the device at path, negotiates a timeout and pets it forever.
// It only ever returns 1, when the device can't be opened.
func daemon(log logrus.FieldLogger, cfg watchdog.Config, path string,
	open func(string) (watchdog.Device, error), clock watchdog.Clock) int {

	dev, err := open(path)
	if err != nil {
		log.Errorf("Failed to open %s: %s", path, cause(err))
		return 1
	}

	interval, _ := watchdog.Negotiate(dev, cfg, log)

	watchdog.KeepAlive(dev, interval, clock)
	return 0
}

func openDevice(path string) (watchdog.Device, error) {
	dev, err := watchdog.Open(path)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// reportOOM names the step that failed, open or write.
func reportOOM(log logrus.FieldLogger, path string, err error) {
	op := "adjust"
	var pe *os.PathError
	if errors.As(err, &pe) {
		op = pe.Op
	}
	log.Warnf("Couldn't %s %s: %s", op, path, cause(err))
}

// cause strips the operation and path from err, leaving the errno text.
func cause(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
