//go:build !pi

package lcd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDummyScreen(t *testing.T) {
	out := &bytes.Buffer{}
	s := &Screen{out: out}

	s.Render([]string{"hidden"})
	assert.Empty(t, out.String())

	assert.NoError(t, s.Start())
	s.Render([]string{">Kodi", " Shell"})
	s.Stop()
	s.Render([]string{"hidden"})

	assert.Equal(t, "Starting the display\n"+
		"----------------\n>Kodi\n Shell\n----------------\n"+
		"Stopping the display\n", out.String())
}
