package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/gammapad/internal/input"
	"github.com/bnema/gammapad/internal/logger"
)

var overlayKeys = map[string]uint16{
	"BUTTON_A": input.BtnA,
	"BUTTON_B": input.BtnB,
	"BUTTON_X": input.BtnX,
	"BUTTON_Y": input.BtnY,
}

var overlayAxes = map[string]uint16{
	"X":        input.AbsX,
	"Y":        input.AbsY,
	"Z":        input.AbsZ,
	"RZ":       input.AbsRZ,
	"LTRIGGER": input.AbsBrake,
	"RTRIGGER": input.AbsGas,
	"HAT_X":    input.AbsHat0X,
	"HAT_Y":    input.AbsHat0Y,
}

// OverlayPath returns the layout file for a vendor/product pair inside dir.
func OverlayPath(dir string, vendor, product uint16) string {
	return filepath.Join(dir, fmt.Sprintf("Vendor_%04x_Product_%04x.kl", vendor, product))
}

// LoadOverlay applies the layout file at path to ctx. A missing file is not
// an error and leaves the identity mapping in place.
func LoadOverlay(path string, ctx *DeviceContext) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No layout overlay", "path", path)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to open layout overlay: %w", err)
	}
	defer f.Close()

	applied, err := ParseOverlay(f, ctx)
	if err != nil {
		return applied, fmt.Errorf("failed to read layout overlay %s: %w", path, err)
	}
	logger.Info("Applied layout overlay", "path", path, "entries", applied)
	return applied, nil
}

// ParseOverlay reads layout lines from r and returns how many took effect.
func ParseOverlay(r io.Reader, ctx *DeviceContext) (int, error) {
	applied := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ApplyOverlayLine(scanner.Text(), ctx) {
			applied++
		}
	}
	return applied, scanner.Err()
}

// ApplyOverlayLine applies a single "<key|axis> <code> <NAME>" line. Lines
// that do not match the grammar are ignored.
func ApplyOverlayLine(line string, ctx *DeviceContext) bool {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return false
	}

	code, ok := parseScancode(fields[1])
	if !ok {
		return false
	}
	name := strings.ToUpper(fields[2])

	switch strings.ToLower(fields[0]) {
	case "key":
		canonical, ok := overlayKeys[name]
		if !ok {
			return false
		}
		return ctx.Keys.Set(code, canonical)
	case "axis":
		canonical, ok := overlayAxes[name]
		if !ok {
			return false
		}
		return ctx.Axes.Set(code, canonical)
	}
	return false
}

func parseScancode(s string) (uint16, bool) {
	base := 10
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		base = 16
		lower = lower[2:]
	}
	v, err := strconv.ParseUint(lower, base, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}
