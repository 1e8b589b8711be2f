// Copyright (c) 2020-present devguard GmbH

package watchdog

import (
	"os"

	"golang.org/x/sys/unix"
)

const DevicePath = "/dev/watchdog"

// Device is the driver side of the watchdog protocol.
type Device interface {
	// SetTimeout arms the timer with seconds. On error the previous
	// timeout stays in effect.
	SetTimeout(seconds int) error
	// GetTimeout reports the timeout the timer is armed with.
	GetTimeout() (int, error)
	// Keepalive restarts the countdown.
	Keepalive() error
}

// File is an open watchdog character device.
// It is never closed, the kernel drops it when the process goes away.
type File struct {
	f *os.File
}

func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

func (self *File) SetTimeout(seconds int) error {
	return ioctlSetIntPtr(int(self.f.Fd()), unix.WDIOC_SETTIMEOUT, seconds)
}

// ioctlSetIntPtr is for requests that read an int through a pointer.
// unix.IoctlSetInt passes the value itself and the driver answers EFAULT.
func ioctlSetIntPtr(fd int, req uint, value int) error {
	return unix.IoctlSetPointerInt(fd, req, value)
}

func (self *File) GetTimeout() (int, error) {
	return unix.IoctlGetInt(int(self.f.Fd()), unix.WDIOC_GETTIMEOUT)
}

// Keepalive writes a single byte. Any byte will do except 'V',
// which some drivers take as the magic close.
func (self *File) Keepalive() error {
	_, err := self.f.Write([]byte{0})
	return err
}
