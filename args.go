package main

import (
	"strconv"

	"github.com/kraudcloud/watchdogd/watchdog"
	"github.com/sirupsen/logrus"
)

// parseArgs reads the optional interval and margin. Anything past those
// two is ignored. Bad values fall back to the default, the daemon has to
// come up regardless. Their sum has to fit the driver's int.
func parseArgs(args []string, log logrus.FieldLogger) watchdog.Config {
	cfg := watchdog.DefaultConfig()

	if len(args) >= 1 {
		cfg.Interval = seconds(args[0], "interval", watchdog.DefaultInterval, log)
	}
	if len(args) >= 2 {
		cfg.Margin = seconds(args[1], "margin", watchdog.DefaultMargin, log)
	}

	if cfg.Timeout() > watchdog.MaxTimeout {
		log.Warnf("Timeout %d out of range, using interval %d and margin %d",
			cfg.Timeout(), watchdog.DefaultInterval, watchdog.DefaultMargin)
		cfg = watchdog.DefaultConfig()
	}

	return cfg
}

func seconds(arg string, name string, def int, log logrus.FieldLogger) int {
	v, err := strconv.Atoi(arg)
	if err != nil || v < 1 || v > watchdog.MaxTimeout {
		log.Warnf("Invalid %s %q, using %d", name, arg, def)
		return def
	}
	return v
}
