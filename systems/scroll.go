package systems

import (
	"math"

	"github.com/pthm-cable/galaxies/config"
)

// ScrollProgress reduces a scroll offset to s in [0, 1].
// The offset saturates at scrollRange viewport heights. A degenerate
// viewport maps any positive offset to 1 and everything else to 0.
func ScrollProgress(scrollY, viewportHeight, scrollRange float64) float64 {
	if math.IsNaN(scrollY) || scrollY <= 0 {
		return 0
	}
	saturation := viewportHeight * scrollRange
	if math.IsNaN(saturation) || saturation <= epsilon {
		return 1
	}
	return clamp(scrollY/saturation, 0, 1)
}

// SpeedMultiplier slows the animation as s grows, never below the floor.
func SpeedMultiplier(s float64, cfg *config.PhysicsConfig) float64 {
	return math.Max(cfg.SpeedFloor, 1-clamp(s, 0, 1)*cfg.SpeedDamping)
}

// OpacityMultiplier fades the animation as s grows, never below the floor.
func OpacityMultiplier(s float64, cfg *config.PhysicsConfig) float64 {
	return math.Max(cfg.OpacityFloor, 1-clamp(s, 0, 1)*cfg.OpacityDamping)
}
