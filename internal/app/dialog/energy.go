package dialog

import (
	"strconv"
	"strings"

	"github.com/zhukovg/energolog/internal/domain"
)

// Canonical keyboard labels for the energy question.
const (
	labelPositive = "Даёт энергию"
	labelNegative = "Забирает энергию"
	labelNeutral  = "Нейтрально"
)

// parseEnergy maps a free-form answer to an energy status. Recognized:
// the canonical labels, free-form variants containing the label stems,
// and numeric codes -2..2 (sign decides, 0 is neutral). Anything else
// is rejected so an unrecognized label is never silently accepted.
func parseEnergy(input string) (domain.EnergyStatus, bool) {
	t := strings.ToLower(strings.TrimSpace(input))
	if t == "" {
		return domain.EnergyUnset, false
	}

	if n, err := strconv.Atoi(t); err == nil {
		if n < -2 || n > 2 {
			return domain.EnergyUnset, false
		}
		switch {
		case n > 0:
			return domain.EnergyPositive, true
		case n < 0:
			return domain.EnergyNegative, true
		default:
			return domain.EnergyNeutral, true
		}
	}

	switch {
	case strings.Contains(t, "дает") || strings.Contains(t, "даёт"):
		return domain.EnergyPositive, true
	case strings.Contains(t, "забирает"):
		return domain.EnergyNegative, true
	case strings.Contains(t, "нейтрал"):
		return domain.EnergyNeutral, true
	}

	return domain.EnergyUnset, false
}
