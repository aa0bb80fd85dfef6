package styling

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func colorfulColorToTcellColor(color colorful.Color) tcell.Color {
	r, g, b := color.Clamped().RGB255()

	rgb := ((uint32(r)) << 16) | (uint32(g) << 8) | (uint32(b))

	return tcell.NewHexColor(int32(rgb))
}

// fadeColorfulColor moves the color towards the given one by the given
// percentage, blending in Lab space so the fade is perceptually even.
func fadeColorfulColor(color, towards colorful.Color, percentage int) colorful.Color {
	if percentage <= 0 {
		return color
	}
	if percentage >= 100 {
		return towards
	}
	return color.BlendLab(towards, float64(percentage)/100.0)
}

func colorfulColorFromHexString(hex string) (colorful.Color, error) {
	color, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("unable to create color from '%s': %w", hex, err)
	}
	return color, nil
}
