package buttons

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// controlChannel wakes the engine out of its poll. The facade writes, the engine waits on read.
type controlChannel struct {
	read  int
	write int
}

func newControlChannel() (*controlChannel, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, fmt.Errorf("create socket pair: %w", err)
	}
	// launched programs must not inherit the channel
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return &controlChannel{read: fds[1], write: fds[0]}, nil
}

func (c *controlChannel) signalStop() error {
	_, err := unix.Write(c.write, []byte("0"))
	return err
}

func (c *controlChannel) Close() error {
	errW := unix.Close(c.write)
	errR := unix.Close(c.read)
	if errW != nil {
		return errW
	}
	return errR
}
