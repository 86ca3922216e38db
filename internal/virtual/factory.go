package virtual

import (
	"fmt"

	"github.com/bnema/gammapad/internal/capture"
	"github.com/bnema/gammapad/internal/config"
	"github.com/bnema/gammapad/internal/uinput"
)

// CreateGamepad builds the layout from ctx and creates the virtual gamepad.
func CreateGamepad(cfg config.GamepadConfig, ctx *capture.DeviceContext) (*uinput.Gamepad, Layout, error) {
	layout := BuildLayout(ctx)
	pad, err := uinput.CreateGamepad(layout.GamepadConfig(cfg.UinputPath, cfg.Name, cfg.Vendor, cfg.Product, cfg.Version))
	if err != nil {
		return nil, layout, fmt.Errorf("failed to create virtual gamepad: %w", err)
	}
	return pad, layout, nil
}

// CreateMouse creates the companion virtual mouse.
func CreateMouse(uinputPath string, cfg config.MouseConfig) (*uinput.Mouse, error) {
	return uinput.CreateMouse(uinputPath, cfg.Name)
}
