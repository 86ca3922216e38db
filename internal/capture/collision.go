package capture

import "github.com/bnema/gammapad/internal/input"

// triggerPositions are the raw axis codes that physical pads commonly use for
// analog triggers. They outrank any other claimant of the same canonical axis.
var triggerPositions = map[uint16]bool{
	input.AbsZ:  true,
	input.AbsRZ: true,
}

// Pruned records an axis removed by collision resolution.
type Pruned struct {
	Scancode  uint16
	Canonical uint16
	Winner    uint16
}

type claim struct {
	scancode  uint16
	magnitude int64
}

// ResolveAxisCollisions guarantees that at most one discovered raw axis feeds
// each canonical axis. Losers are removed from the discovered set and dropped
// from the axis map.
func ResolveAxisCollisions(ctx *DeviceContext) []Pruned {
	claims := make(map[uint16]claim)
	var pruned []Pruned

	for _, code := range ctx.DiscoveredAxes.Codes() {
		canonical, ok := ctx.Axes.Lookup(code)
		if !ok {
			continue
		}
		challenger := claim{scancode: code, magnitude: ctx.Range(code).Span()}

		incumbent, taken := claims[canonical]
		if !taken {
			claims[canonical] = challenger
			continue
		}

		winner, loser := incumbent, challenger
		if challengerWins(incumbent, challenger) {
			winner, loser = challenger, incumbent
		}
		claims[canonical] = winner

		ctx.DiscoveredAxes.Remove(loser.scancode)
		ctx.Axes.Drop(loser.scancode)
		pruned = append(pruned, Pruned{Scancode: loser.scancode, Canonical: canonical, Winner: winner.scancode})
	}
	return pruned
}

func challengerWins(incumbent, challenger claim) bool {
	inTrigger := triggerPositions[incumbent.scancode]
	chTrigger := triggerPositions[challenger.scancode]
	if inTrigger != chTrigger {
		return chTrigger
	}
	return challenger.magnitude > incumbent.magnitude
}
