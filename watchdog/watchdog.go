/*
Package watchdog checks host reachability with a periodic OS ping and
reports an outage through a callback. It is a collaborator of the s7
client, not driven by it: pair one watchdog with one PLC address to get
notified when the device drops off the network between polls.
*/
package watchdog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/thinkgos/timing/v4"
)

// DefaultTimeout time to wait for one ping reply.
const DefaultTimeout = 1 * time.Second

// the schedule is pointless below this
const minInterval = 10 * time.Millisecond

// OnFailure is invoked at most once per detected outage; the watchdog
// stands down afterwards until Start is called again.
type OnFailure func(err error)

// Watchdog pings one host on a fixed interval.
type Watchdog struct {
	host      string
	interval  time.Duration
	timeout   time.Duration
	onFailure OnFailure
	tm        *timing.Timer
	running   uint32
}

// Option custom option on the watchdog.
type Option func(*Watchdog)

// WithTimeout set the wait for one ping reply, default DefaultTimeout.
func WithTimeout(t time.Duration) Option {
	return func(w *Watchdog) {
		w.timeout = t
	}
}

// New allocates a watchdog for host, probing every interval.
func New(host string, interval time.Duration, onFailure OnFailure, opts ...Option) *Watchdog {
	w := &Watchdog{
		host:      host,
		interval:  interval,
		timeout:   DefaultTimeout,
		onFailure: onFailure,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start validates the parameters and schedules the first probe.
func (sf *Watchdog) Start() error {
	if sf.host == "" {
		return errors.New("watchdog: host must not be empty")
	}
	if sf.interval <= minInterval {
		return fmt.Errorf("watchdog: interval must be greater than %s", minInterval)
	}
	if _, err := net.ResolveIPAddr("ip", sf.host); err != nil {
		return err
	}
	if !atomic.CompareAndSwapUint32(&sf.running, 0, 1) {
		return nil // already running
	}
	sf.tm = timing.NewTimer(sf.interval)
	sf.tm.WithJobFunc(sf.fire)
	timing.Add(sf.tm, sf.interval)
	return nil
}

// Stop stands the schedule down. A pending probe may still finish but
// will not reschedule or report.
func (sf *Watchdog) Stop() {
	atomic.StoreUint32(&sf.running, 0)
}

// IsRunning reports whether the schedule is active.
func (sf *Watchdog) IsRunning() bool {
	return atomic.LoadUint32(&sf.running) == 1
}

// fire runs on the timing wheel; the probe itself blocks up to the ping
// timeout, so it moves to its own goroutine.
func (sf *Watchdog) fire() {
	if atomic.LoadUint32(&sf.running) == 0 {
		return
	}
	go sf.probe()
}

func (sf *Watchdog) probe() {
	if reachable(sf.host, sf.timeout) {
		if atomic.LoadUint32(&sf.running) == 1 {
			timing.Add(sf.tm, sf.interval)
		}
		return
	}
	if !atomic.CompareAndSwapUint32(&sf.running, 1, 0) {
		return // stopped while probing
	}
	if sf.onFailure != nil {
		sf.onFailure(fmt.Errorf("watchdog: host %s not reachable (%s)", sf.host, sf.timeout))
	}
}

// reachable sends one OS ping and waits for the reply.
func reachable(host string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	countFlag := "-c"
	if runtime.GOOS == "windows" {
		countFlag = "-n"
	}
	return exec.CommandContext(ctx, "ping", countFlag, "1", host).Run() == nil
}
