package klog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/euank/go-kmsg-parser/v2/kmsgparser"
	"github.com/spf13/cobra"
)

var levels = [8]string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}

// Tail follows the kernel log and prints every record carrying tag to w.
// It only returns if the kernel log can't be read.
func Tail(w io.Writer, tag string) error {
	parser, err := kmsgparser.NewParser()
	if err != nil {
		return err
	}
	defer parser.Close()

	for msg := range parser.Parse() {
		if line, ok := Render(msg, tag, time.Now()); ok {
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// Render formats msg relative to now, or reports false if msg isn't ours.
func Render(msg kmsgparser.Message, tag string, now time.Time) (string, bool) {
	body, ok := strings.CutPrefix(msg.Message, tag+": ")
	if !ok {
		return "", false
	}
	body = strings.TrimRight(body, "\n")

	// userspace records carry the LOG_USER facility in the upper bits
	level := levels[msg.Priority&7]

	return fmt.Sprintf("%-16s %-7s %s", humanize.RelTime(msg.Timestamp, now, "ago", "from now"), level, body), true
}

func TailCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "follow the daemon's records in the kernel log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Tail(cmd.OutOrStdout(), Tag)
		},
	}
}
