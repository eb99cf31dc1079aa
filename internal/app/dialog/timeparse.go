package dialog

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/zhukovg/energolog/internal/domain"
)

// Exactly two digits, colon, two digits. "9:00" and "9.00" are not a
// valid reminder time.
var timeOfDayRe = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

func parseTimeOfDay(input string) (domain.TimeOfDay, error) {
	m := timeOfDayRe.FindStringSubmatch(input)
	if m == nil {
		return domain.TimeOfDay{}, fmt.Errorf("time %q is not in HH:MM form: %w", input, domain.ErrValidation)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 {
		return domain.TimeOfDay{}, fmt.Errorf("hour %d out of range: %w", hour, domain.ErrValidation)
	}
	if minute > 59 {
		return domain.TimeOfDay{}, fmt.Errorf("minute %d out of range: %w", minute, domain.ErrValidation)
	}

	return domain.TimeOfDay{Hour: hour, Minute: minute}, nil
}
