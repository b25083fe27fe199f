package lcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	tt := []struct {
		name  string
		input string
		out   string
	}{
		{"short", "Kodi", "Kodi            "},
		{"exact", "0123456789abcdef", "0123456789abcdef"},
		{"long", ">Emulation Station", ">Emulation Stati"},
		{"empty", "", "                "},
		{"multibyte", "Rétro Émulation Station", "Rétro Émulation "},
		{"multibyte short", "Café", "Café            "},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, fit(tc.input))
		})
	}
}

func TestLineString(t *testing.T) {
	assert.Equal(t, "L1", Line1.String())
	assert.Equal(t, "L2", Line2.String())
	assert.Equal(t, "N/A", Line(0).String())
}

func TestPinNumbers(t *testing.T) {
	assert.Equal(t, []string{"7", "8", "25", "24", "23", "18"}, DefaultPins.Numbers())

	p := Pins{RegisterSelection: "GPIO4", ClockEdge: "GPIO17", Data: [4]string{"GPIO25", "GPIO22", "GPIO23", "GPIO24"}}
	assert.Equal(t, []string{"4", "17", "25", "22", "23", "24"}, p.Numbers())
}
