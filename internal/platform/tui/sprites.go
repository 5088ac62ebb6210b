package tui

import (
	"github.com/vovakirdan/g-runner/internal/core"
	"github.com/vovakirdan/g-runner/internal/games/runner"
)

// Sprite is ASCII art for one image. Spaces are transparent.
type Sprite struct {
	Lines []string
	Color core.Color
	// Backdrop sprites are tiled horizontally along the bottom of the
	// screen instead of being placed at a point.
	Backdrop bool
}

// Width returns the widest line in cells.
func (s Sprite) Width() int {
	w := 0
	for _, l := range s.Lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	return w
}

// sprites holds every image the engine can load.
var sprites = map[string]Sprite{
	runner.ImageBackground: {
		Color:    core.ColorGray,
		Backdrop: true,
		Lines: []string{
			`      _      __                  |~|          ___        `,
			`  ___| |    |  |   ____    _     | |   __    |   |   _   `,
			` |   | |_   |  |  |    |  | |__  | |  |  |___|   |  | |  `,
			`_|___|___|__|__|__|____|__|____|_|_|__|__|___|___|__|_|__`,
		},
	},

	runner.PlayerImageName(0): {Color: core.ColorBrightCyan, Lines: []string{` ,--. `, `( G  )>`, ` /  \ `}},
	runner.PlayerImageName(1): {Color: core.ColorBrightCyan, Lines: []string{` ,--. `, `( G  )>`, ` |  / `}},
	runner.PlayerImageName(2): {Color: core.ColorBrightCyan, Lines: []string{` ,--. `, `( G  )>`, `  ||  `}},
	runner.PlayerImageName(3): {Color: core.ColorBrightCyan, Lines: []string{` ,--. `, `( G  )>`, ` \  | `}},

	runner.CategoryVim.String():    {Color: core.ColorBrightGreen, Lines: []string{`.---.`, `|vim|`, `'---'`}},
	runner.CategoryApple.String():  {Color: core.ColorRed, Lines: []string{` ,( `, `(   )`, ` '-' `}},
	runner.CategoryDell.String():   {Color: core.ColorBlue, Lines: []string{`[===]`, `|DEL|`, `[===]`}},
	runner.CategoryVSCode.String(): {Color: core.ColorBrightBlue, Lines: []string{`<\ />`, `| X |`, `</ \>`}},
}

// tracks holds every sound the engine can load, with the label shown in
// the status line while it plays.
var tracks = map[string]string{
	runner.SoundTitleTheme: "title theme",
	runner.SoundGameTheme:  "game theme",
	runner.SoundCollect:    "*collect*",
	runner.SoundFail:       "*crash*",
}
