package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/ui"
	evdev "github.com/holoplot/go-evdev"
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List input devices that look like joysticks",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := evdev.ListDevicePaths()
		if err != nil {
			return fmt.Errorf("failed to list input devices: %w", err)
		}

		var rows [][]string
		for _, p := range paths {
			row, joystick := describeDevice(p.Path, p.Name)
			if joystick || listAll {
				rows = append(rows, row)
			}
		}

		var output strings.Builder
		output.WriteString(ui.FormatAppHeader("INPUT DEVICES", ""))
		output.WriteString("\n\n")
		if len(rows) == 0 {
			output.WriteString(ui.SubtleStyle.Render("No joysticks found (try --all, or check permissions on /dev/input)"))
		} else {
			output.WriteString(ui.NewTable("PATH", "NAME", "ID", "KEYS", "AXES").Rows(rows...).String())
			output.WriteString("\n\n")
			output.WriteString(ui.SubtleStyle.Render("Run: gammapad probe <path> to inspect the mapping"))
		}
		fmt.Println(output.String())
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show every input device")
	rootCmd.AddCommand(listCmd)
}

// describeDevice summarizes one event node and reports whether it has both
// gamepad buttons and absolute axes.
func describeDevice(path, name string) ([]string, bool) {
	dev, err := evdev.Open(path)
	if err != nil {
		return []string{path, name, "-", "-", "-"}, false
	}
	defer dev.Close()

	id := "-"
	if iid, err := dev.InputID(); err == nil {
		id = fmt.Sprintf("%04x:%04x", iid.Vendor, iid.Product)
	}

	keys := dev.CapableEvents(evdev.EV_KEY)
	axes := dev.CapableEvents(evdev.EV_ABS)

	buttons := 0
	for _, k := range keys {
		if uint16(k) >= input.BtnGamepad && uint16(k) <= input.BtnThumbR {
			buttons++
		}
	}

	row := []string{path, name, id, fmt.Sprintf("%d", len(keys)), fmt.Sprintf("%d", len(axes))}
	return row, buttons > 0 && len(axes) > 0
}
