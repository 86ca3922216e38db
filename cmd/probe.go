package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/gammapad/internal/capture"
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
	"github.com/bnema/gammapad/internal/session"
	"github.com/bnema/gammapad/internal/ui"
	"github.com/bnema/gammapad/internal/virtual"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <device>",
	Short: "Show how a physical device would be mapped",
	Long: `Probe opens the device without grabbing it, applies the layout overlay and
resolves axis collisions, then prints the resulting mapping and the virtual
gamepad layout. No virtual device is created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		device := config.DeviceConfig{Path: args[0], Grab: false}

		d := session.Discover(device, cfg.Layout)
		if d.Physical == nil {
			return fmt.Errorf("could not open %s", args[0])
		}
		defer func() {
			if err := d.Physical.Close(); err != nil {
				logger.Warn("Failed to close device", "error", err)
			}
		}()

		fmt.Println(renderProbe(d, virtual.BuildLayout(d.Context)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func renderProbe(d *session.Discovery, layout virtual.Layout) string {
	ctx := d.Context
	var out strings.Builder

	id := ctx.Identity
	out.WriteString(ui.FormatAppHeader("PROBE", fmt.Sprintf("%s %04x:%04x", id.Name, id.Vendor, id.Product)))
	out.WriteString("\n")
	out.WriteString(ui.CreateSeparator(60, ""))
	out.WriteString("\n")

	switch {
	case d.OverlayPath == "":
		out.WriteString(ui.FormatCheck(false, "Layout overlay", "none configured"))
	case d.OverlayEntries == 0:
		out.WriteString(ui.FormatCheck(false, "Layout overlay", d.OverlayPath+" (no entries applied)"))
	default:
		out.WriteString(ui.FormatCheck(true, "Layout overlay", fmt.Sprintf("%s (%d entries)", d.OverlayPath, d.OverlayEntries)))
	}
	out.WriteString("\n\n")

	pruned := make(map[uint16]capture.Pruned)
	for _, p := range d.Pruned {
		pruned[p.Scancode] = p
	}

	var axisRows [][]string
	for code := uint16(0); code <= input.AbsMax; code++ {
		p, wasPruned := pruned[code]
		if !ctx.DiscoveredAxes.Has(code) && !wasPruned {
			continue
		}
		r := ctx.Range(code)
		target, status := "-", "forwarded"
		if canonical, ok := ctx.Axes.Lookup(code); ok {
			target = input.AbsName(canonical)
		}
		if wasPruned {
			target = input.AbsName(p.Canonical)
			status = fmt.Sprintf("dropped, %s kept", input.AbsName(p.Winner))
		}
		axisRows = append(axisRows, []string{input.AbsName(code), target, fmt.Sprintf("%d..%d", r.Min, r.Max), status})
	}
	if len(axisRows) > 0 {
		out.WriteString(ui.NewTable("AXIS", "TARGET", "RANGE", "STATUS").Rows(axisRows...).String())
		out.WriteString("\n\n")
	}

	var keyRows [][]string
	for _, code := range ctx.DiscoveredKeys.Codes() {
		target := "-"
		if canonical, ok := ctx.Keys.Lookup(code); ok {
			target = input.KeyName(canonical)
		}
		keyRows = append(keyRows, []string{input.KeyName(code), target})
	}
	if len(keyRows) > 0 {
		out.WriteString(ui.NewTable("KEY", "TARGET").Rows(keyRows...).String())
		out.WriteString("\n\n")
	}

	out.WriteString(ui.SubtleStyle.Render(fmt.Sprintf("Virtual gamepad: %d buttons, %d axes, %d effect types",
		len(layout.Buttons), len(layout.Axes), len(layout.Effects))))
	return out.String()
}
