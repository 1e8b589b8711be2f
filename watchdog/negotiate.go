package watchdog

import (
	"math"

	"github.com/sirupsen/logrus"
)

const (
	DefaultInterval = 10
	DefaultMargin   = 10

	// MaxTimeout is the largest timeout the driver's int argument can carry.
	MaxTimeout = math.MaxInt32
)

// Config is what the operator asked for, in seconds.
type Config struct {
	Interval int
	Margin   int
}

func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Margin:   DefaultMargin,
	}
}

// Timeout is the value requested from the driver.
func (c Config) Timeout() int {
	return c.Interval + c.Margin
}

// Negotiate arms dev and returns the petting interval together with the
// timeout it has to beat.
//
// If the driver rejects the requested timeout, the interval is derived from
// whatever timeout the driver reports instead. If the driver won't report
// one either, the configured interval is kept and the returned timeout is the
// requested one, which the device may not actually be armed with.
// Nothing here is retried.
func Negotiate(dev Device, cfg Config, log logrus.FieldLogger) (interval int, timeout int) {
	interval = cfg.Interval
	timeout = cfg.Timeout()

	err := dev.SetTimeout(timeout)
	if err == nil {
		return interval, timeout
	}
	log.Errorf("Failed to set timeout to %d: %s", timeout, err)

	actual, err := dev.GetTimeout()
	if err != nil {
		log.Errorf("Failed to get timeout: %s", err)
		return interval, timeout
	}

	timeout = actual
	interval = Interval(timeout, cfg.Margin)
	log.Warnf("Adjusted interval to timeout returned by driver: timeout %d, interval %d, margin %d",
		timeout, interval, cfg.Margin)

	return interval, timeout
}

// Interval is timeout minus margin, but never less than one second.
func Interval(timeout, margin int) int {
	if timeout > margin {
		return timeout - margin
	}
	return 1
}
