package buttons

import (
	"time"

	"golang.org/x/sys/unix"
)

// waiter blocks until the control channel or a pin is ready. fired is parallel to the pin table
// and is overwritten on every call.
type waiter interface {
	wait(timeout time.Duration, fired []bool) (stop bool, err error)
}

// pollSet waits with poll(2). Slot 0 is the control channel, slot i+1 is pin i.
type pollSet struct {
	fds []unix.PollFd
}

func newPollSet(control int, pins *pinTable) *pollSet {
	fds := make([]unix.PollFd, 0, pins.len()+1)
	fds = append(fds, unix.PollFd{Fd: int32(control), Events: unix.POLLIN})
	for _, h := range pins.handles {
		fds = append(fds, unix.PollFd{Fd: int32(h.Fd()), Events: unix.POLLPRI | unix.POLLERR})
	}
	return &pollSet{fds: fds}
}

func (p *pollSet) wait(timeout time.Duration, fired []bool) (bool, error) {
	ms := -1
	if timeout > 0 {
		ms = int(timeout / time.Millisecond)
	}

	for i := range p.fds {
		p.fds[i].Revents = 0
	}
	for {
		_, err := unix.Poll(p.fds, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		break
	}

	// sysfs raises POLLERR alongside POLLPRI; either one means the pin needs servicing
	for i := range fired {
		fired[i] = p.fds[i+1].Revents&(unix.POLLPRI|unix.POLLERR) != 0
	}
	return p.fds[0].Revents&unix.POLLIN != 0, nil
}
