package ui

import (
	"strings"
)

// ConsoleHelp renders the console command reference
func ConsoleHelp(buttons, axes []string) string {
	lines := []string{
		HeaderStyle.Render("Console commands"),
		"  " + FormatControl("press <button> [ms]", "hold a button, default 3000ms"),
		"  " + FormatControl("push <axis> <value> [ms]", "deflect an axis"),
		"  " + FormatControl("move <dx> <dy>", "move the virtual mouse"),
		"  " + FormatControl("click <left|right|middle>", "click a mouse button"),
		"  " + FormatControl("scroll <delta> [h]", "turn the mouse wheel"),
		"  " + FormatControl("help", "show this text"),
		"  " + FormatControl("exit", "quit"),
		"",
		InfoStyle.Render("Buttons: ") + TextStyle.Render(strings.Join(buttons, " ")),
		InfoStyle.Render("Axes:    ") + TextStyle.Render(strings.Join(axes, " ")),
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}
