// Copyright (c) 2020-present devguard GmbH

package klog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const (
	Path = "/dev/kmsg"
	Tag  = "watchdogd"

	// MaxLen is the record buffer size, including the terminator that
	// is never written.
	MaxLen = 256
)

// Formatter renders one kmsg record per entry, with the kernel log
// level as the <N> prefix.
type Formatter struct {
	Tag string
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var prefix string
	switch entry.Level {
	case logrus.PanicLevel:
		prefix = "<0>"
	case logrus.FatalLevel:
		prefix = "<1>"
	case logrus.ErrorLevel:
		prefix = "<2>"
	case logrus.WarnLevel:
		prefix = "<4>"
	case logrus.InfoLevel:
		prefix = "<5>"
	case logrus.DebugLevel:
		prefix = "<6>"
	case logrus.TraceLevel:
		prefix = "<7>"
	}
	if f.Tag != "" {
		prefix += f.Tag + ": "
	}

	line := prefix + strings.TrimRight(entry.Message, "\n")
	if len(line) > MaxLen-2 {
		cut := MaxLen - 2
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	return []byte(line + "\n"), nil
}

// New builds the daemon's logger on top of the kmsg device at path.
// If that can't be opened, a notice goes to fallback once and the logger
// drops everything from then on.
func New(path string, fallback io.Writer) *logrus.Logger {
	log := &logrus.Logger{
		Level:     logrus.DebugLevel,
		Out:       io.Discard,
		Formatter: &Formatter{Tag: Tag},
		Hooks:     make(logrus.LevelHooks),
	}

	lo, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		fmt.Fprintf(fallback, "Couldn't open %s\n", path)
		return log
	}
	log.Out = lo

	return log
}
