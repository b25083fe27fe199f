package buttons

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	tt := []struct {
		name  string
		input string
		base  string
		pins  []PinConfig
	}{
		{
			"three buttons",
			"/sys/class/gpio\nup=17\ndown=27\nselect=22\n",
			"/sys/class/gpio",
			[]PinConfig{{"17", "up"}, {"27", "down"}, {"22", "select"}},
		},
		{
			"empty pin is dropped",
			"/sys/class/gpio\nup=\ndown=27\n",
			"/sys/class/gpio",
			[]PinConfig{{"27", "down"}},
		},
		{
			"line without separator is dropped",
			"/sys/class/gpio\nnonsense\nquit=5\n",
			"/sys/class/gpio",
			[]PinConfig{{"5", "quit"}},
		},
		{
			"duplicate pin takes the last function",
			"/gpio\nup=17\ndown=27\nselect=17\n",
			"/gpio",
			[]PinConfig{{"17", "select"}, {"27", "down"}},
		},
		{
			"windows line endings",
			"/gpio\r\nup=17\r\n",
			"/gpio",
			[]PinConfig{{"17", "up"}},
		},
		{
			"no trailing newline",
			"/gpio\nshutdown=3",
			"/gpio",
			[]PinConfig{{"3", "shutdown"}},
		},
		{
			"base dir only",
			"/gpio\n",
			"/gpio",
			nil,
		},
		{
			"empty input",
			"",
			"",
			nil,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c := ParseConfig(strings.NewReader(tc.input))
			assert.Equal(t, tc.base, c.BaseDir)
			assert.Equal(t, tc.pins, c.Pins)
		})
	}
}
