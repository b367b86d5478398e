package execution

import (
	"math"

	"github.com/deniscmrg/investia-api/internal/domain"
)

// stepTolerance absorbs float noise when checking that a quantity sits
// on the volume-step grid.
const stepTolerance = 1e-6

// CheckVolume validates a requested quantity against the symbol's
// volume constraints. Returns the first violated rule's reason code, or
// "" when the quantity is admissible. Constraints with missing min, max
// or step are treated as unavailable rather than waved through.
func CheckVolume(quantity float64, c *domain.SymbolConstraints) string {
	if c == nil || c.MinVolume <= 0 || c.MaxVolume <= 0 || c.VolumeStep <= 0 {
		return domain.ReasonConstraintsUnavailable
	}
	if quantity < c.MinVolume {
		return domain.ReasonVolumeBelowMinimum
	}
	if quantity > c.MaxVolume {
		return domain.ReasonVolumeAboveMaximum
	}
	rem := math.Mod(quantity-c.MinVolume, c.VolumeStep)
	if rem > stepTolerance && c.VolumeStep-rem > stepTolerance {
		return domain.ReasonVolumeInvalidStep
	}
	return ""
}
