package buttons

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// fakeSysfs lays out a directory that looks like /sys/class/gpio after the given pins have been
// exported. Every value file starts out low.
func fakeSysfs(t *testing.T, ids ...string) string {
	t.Helper()
	base := t.TempDir()
	touch(t, filepath.Join(base, "export"), "")
	touch(t, filepath.Join(base, "unexport"), "")
	for _, id := range ids {
		dir := filepath.Join(base, "gpio"+id)
		require.NoError(t, os.Mkdir(dir, 0o755))
		touch(t, filepath.Join(dir, "direction"), "")
		touch(t, filepath.Join(dir, "edge"), "")
		touch(t, filepath.Join(dir, "value"), "0\n")
	}
	return base
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func setValue(t *testing.T, base, id, value string) {
	t.Helper()
	touch(t, filepath.Join(base, "gpio"+id, "value"), value+"\n")
}

type fakeClock struct {
	mu   sync.Mutex
	base time.Time
	now  time.Time
}

func newFakeClock() *fakeClock {
	base := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	return &fakeClock{base: base, now: base}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) set(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.base.Add(offset)
}

// step is one wake of a scriptWaiter. pin is the index of the pin that fired, -1 for a timeout.
type step struct {
	at   time.Duration
	pin  int
	stop bool
}

func fire(at time.Duration, pin int) step {
	return step{at: at, pin: pin}
}

func timeout(at time.Duration) step {
	return step{at: at, pin: -1}
}

// scriptWaiter plays back steps. Once they run out it waits for the control channel, or stops
// right away when it has none.
type scriptWaiter struct {
	clock   *fakeClock
	steps   []step
	control int
	waits   int
}

func (s *scriptWaiter) wait(_ time.Duration, fired []bool) (bool, error) {
	s.waits++
	for i := range fired {
		fired[i] = false
	}

	if len(s.steps) == 0 {
		if s.control < 0 {
			return true, nil
		}
		fds := []unix.PollFd{{Fd: int32(s.control), Events: unix.POLLIN}}
		for {
			if _, err := unix.Poll(fds, -1); err != unix.EINTR {
				return true, nil
			}
		}
	}

	st := s.steps[0]
	s.steps = s.steps[1:]
	s.clock.set(st.at)
	if st.pin >= 0 {
		fired[st.pin] = true
	}
	return st.stop, nil
}

// recorder collects handler calls.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) handle(function string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, function)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
