package watchdog

import (
	"time"
)

// Clock is all the loop needs from time.
type Clock interface {
	Sleep(d time.Duration)
}

type RealClock struct{}

func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Pulse pets dev once, then waits out interval seconds.
func Pulse(dev Device, interval int, clock Clock) {
	dev.Keepalive()
	clock.Sleep(time.Duration(interval) * time.Second)
}

// KeepAlive pets dev every interval seconds and never returns.
// Write errors are ignored. If petting stops working, the watchdog fires.
func KeepAlive(dev Device, interval int, clock Clock) {
	for {
		Pulse(dev, interval, clock)
	}
}
