package app

import (
	"fmt"

	"github.com/phillarmonic/figlet/figletlib"
)

// Domain: Version Display
// This file contains logic for displaying version information

// tokenKindCount is the size of the lexer's closed token-kind set (spec.md
// §2), surfaced here instead of marketing copy.
const tokenKindCount = 14

// ShowVersion prints a gradient banner followed by the build stamp and a
// one-line reminder of what this binary actually does.
func ShowVersion(version, commit, date string) error {
	loader := figletlib.NewEmbededLoader()
	font, err := loader.GetFontByName("standard")
	if err != nil {
		return err
	}

	startColor, _ := figletlib.ParseColor("#7C3AED")
	endColor, _ := figletlib.ParseColor("#06B6D4")
	gradientConfig := figletlib.ColorConfig{
		Mode:       figletlib.ColorModeGradient,
		StartColor: startColor,
		EndColor:   endColor,
	}
	figletlib.PrintColoredMsg("synlex", font, 80, font.Settings(), "left", gradientConfig)

	build := version
	if commit != "unknown" {
		build += " (" + commit
		if date != "unknown" {
			build += ", " + date
		}
		build += ")"
	}
	fmt.Printf("%s — %d token kinds, syntax-table driven\n", build, tokenKindCount)
	return nil
}
