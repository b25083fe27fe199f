package buttons

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Handle is an open pin value file.
type Handle interface {
	io.ReadSeeker
	io.Closer
	Fd() uintptr
}

// pinTable holds the pins of one poll session. The slices are index-correlated and are not
// modified once activate returns.
type pinTable struct {
	handles   []Handle
	ids       []string
	functions []string
	// exported lists every pin written to the export file, including the ones that failed later.
	exported []string
}

func (t *pinTable) len() int {
	return len(t.handles)
}

// controller performs the sysfs handshake for a set of pins.
type controller struct {
	baseDir string
	// level is written to the direction file after "in". Empty skips it.
	level string
	log   logrus.FieldLogger
}

func (c *controller) path(elem ...string) string {
	return filepath.Join(append([]string{c.baseDir}, elem...)...)
}

func (c *controller) pinPath(id, file string) string {
	return c.path("gpio"+id, file)
}

// activate exports every pin, configures it as a rising edge input and opens its value file.
// Pins that fail at any step are logged and left out of the returned table.
func (c *controller) activate(pins []PinConfig) *pinTable {
	t := &pinTable{}

	ids := make([]string, 0, len(pins))
	for _, p := range pins {
		ids = append(ids, p.ID)
	}
	c.writeIDs("export", ids)
	t.exported = ids

	for _, p := range pins {
		h, err := c.open(p.ID)
		if err != nil {
			c.log.WithFields(logrus.Fields{
				"pin":      p.ID,
				"function": p.Function,
			}).Warnf("Failed to open pin %s: %v", p.ID, err)
			continue
		}

		t.handles = append(t.handles, h)
		t.ids = append(t.ids, p.ID)
		t.functions = append(t.functions, p.Function)
	}

	c.log.Debugf("Activated %d of %d pins", t.len(), len(pins))
	return t
}

func (c *controller) open(id string) (Handle, error) {
	direction := []string{"in"}
	if c.level != "" {
		direction = append(direction, c.level)
	}
	if err := writeLines(c.pinPath(id, "direction"), direction...); err != nil {
		return nil, fmt.Errorf("set direction: %w", err)
	}
	if err := writeLines(c.pinPath(id, "edge"), "rising"); err != nil {
		return nil, fmt.Errorf("set edge: %w", err)
	}

	f, err := os.OpenFile(c.pinPath(id, "value"), os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	// clear any edge recorded before we started listening
	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && err != io.EOF {
		c.log.Debugf("Initial read of pin %s failed: %v", id, err)
	}

	return f, nil
}

// deactivate closes every handle and unexports every pin that activate exported.
func (c *controller) deactivate(t *pinTable) {
	if t == nil {
		return
	}

	for i, h := range t.handles {
		if err := h.Close(); err != nil {
			c.log.Debugf("Closing pin %s: %v", t.ids[i], err)
		}
	}

	c.writeIDs("unexport", t.exported)
}

// writeIDs writes one pin id per write to a control file. A failing id does not stop the rest.
func (c *controller) writeIDs(file string, ids []string) {
	if len(ids) == 0 {
		return
	}

	f, err := os.OpenFile(c.path(file), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		c.log.Warnf("Unable to open %s: %v", file, err)
		return
	}
	defer f.Close()

	for _, id := range ids {
		if _, err := f.Write([]byte(id + "\n")); err != nil {
			c.log.Debugf("Writing pin %s to %s: %v", id, file, err)
		}
	}
}

// writeLines writes each line with its own write call and stops at the first failure. sysfs
// attributes take one value per write.
func writeLines(path string, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}

	for _, l := range lines {
		if _, err := f.Write([]byte(l + "\n")); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
