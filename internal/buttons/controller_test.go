package buttons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate(t *testing.T) {
	base := fakeSysfs(t, "17", "27")
	logger, _ := test.NewNullLogger()
	c := &controller{baseDir: base, level: "low", log: logger}

	table := c.activate([]PinConfig{{"17", "up"}, {"27", "down"}})
	defer c.deactivate(table)

	assert.Equal(t, "17\n27\n", readFile(t, filepath.Join(base, "export")))
	for _, id := range []string{"17", "27"} {
		assert.Equal(t, "in\nlow\n", readFile(t, filepath.Join(base, "gpio"+id, "direction")))
		assert.Equal(t, "rising\n", readFile(t, filepath.Join(base, "gpio"+id, "edge")))
	}

	assert.Equal(t, 2, table.len())
	assert.Equal(t, []string{"17", "27"}, table.ids)
	assert.Equal(t, []string{"up", "down"}, table.functions)
}

func TestActivateWithoutLevel(t *testing.T) {
	base := fakeSysfs(t, "4")
	logger, _ := test.NewNullLogger()
	c := &controller{baseDir: base, log: logger}

	table := c.activate([]PinConfig{{"4", "select"}})
	defer c.deactivate(table)

	assert.Equal(t, "in\n", readFile(t, filepath.Join(base, "gpio4", "direction")))
}

func TestActivatePartial(t *testing.T) {
	base := fakeSysfs(t, "17", "22")
	logger, hook := test.NewNullLogger()
	c := &controller{baseDir: base, level: "low", log: logger}

	table := c.activate([]PinConfig{{"17", "up"}, {"27", "down"}, {"22", "select"}})
	defer c.deactivate(table)

	assert.Equal(t, []string{"17", "22"}, table.ids)
	assert.Equal(t, []string{"up", "select"}, table.functions)
	assert.Equal(t, "17\n27\n22\n", readFile(t, filepath.Join(base, "export")))

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["pin"] == "27" {
			warned = true
		}
	}
	assert.True(t, warned, "failed pin should be reported")
}

func TestActivateLeavesValueReadable(t *testing.T) {
	base := fakeSysfs(t, "17")
	setValue(t, base, "17", "1")
	logger, _ := test.NewNullLogger()
	c := &controller{baseDir: base, log: logger}

	table := c.activate([]PinConfig{{"17", "up"}})
	defer c.deactivate(table)

	require.Equal(t, 1, table.len())
	v, err := readValue(table.handles[0])
	require.NoError(t, err)
	assert.Equal(t, byte('1'), v)
}

func TestDeactivate(t *testing.T) {
	base := fakeSysfs(t, "17", "22")
	logger, _ := test.NewNullLogger()
	c := &controller{baseDir: base, log: logger}

	table := c.activate([]PinConfig{{"17", "up"}, {"27", "down"}, {"22", "select"}})
	handles := table.handles
	c.deactivate(table)

	assert.Equal(t, "17\n27\n22\n", readFile(t, filepath.Join(base, "unexport")))
	for _, h := range handles {
		_, err := h.Seek(0, 0)
		assert.ErrorIs(t, err, os.ErrClosed)
	}
}

func TestDeactivateNil(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := &controller{baseDir: t.TempDir(), log: logger}

	assert.NotPanics(t, func() { c.deactivate(nil) })
}

func TestActivateMissingBaseDir(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := &controller{baseDir: filepath.Join(t.TempDir(), "missing"), log: logger}

	table := c.activate([]PinConfig{{"17", "up"}})

	assert.Equal(t, 0, table.len())
	assert.NotEmpty(t, hook.AllEntries())
}
