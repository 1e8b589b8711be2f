// Copyright (c) 2020-present devguard GmbH

package main

import (
	"os"

	"github.com/kraudcloud/watchdogd/klog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "watchdogd [interval] [margin]",
		Short: "keep the hardware watchdog from resetting the system",
		Long: "Pets /dev/watchdog every interval seconds (default 10). The device is armed\n" +
			"with interval+margin seconds (margin defaults to 10).",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(main_daemon(args))
		},
	}

	rootCmd.AddCommand(klog.TailCMD())

	err := rootCmd.Execute()
	if err != nil {
		panic(err)
	}
}
