package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/solplan/internal/calendar"
	"github.com/alexanderramin/solplan/internal/domain"
)

// MaxBackwardMonths bounds the backward walk that accumulates productive
// construction months.
const MaxBackwardMonths = 240

// ErrRestrictionCalendar is returned when the restriction table leaves too
// few productive months to place construction within MaxBackwardMonths.
var ErrRestrictionCalendar = errors.New("restriction calendar leaves no productive construction months")

func productiveMonth(subcontracted bool, isRestricted func(time.Month) bool) func(time.Month) bool {
	return func(m time.Month) bool {
		return subcontracted || !isRestricted(m)
	}
}

// constructionPhase ends half a month before grid connection completes.
// Its start walks backward one month at a time, counting only productive
// months, until the nominal duration is reached. A start earlier than the
// security lock is clamped to it; the end stays fixed, so the realized
// duration shrinks.
func constructionPhase(s phaseSetting, securityLock, connectionEnd time.Time, productive func(time.Month) bool) (*domain.Phase, error) {
	if !s.enabled {
		return nil, nil
	}

	end := calendar.AddMonths(connectionEnd, -constructionTestMonths)
	start, err := walkBackProductive(end, s.months, productive)
	if err != nil {
		return nil, err
	}
	if start.Before(securityLock) {
		start = securityLock
	}

	return newPhase(domain.PhaseConstruction, start, end, calendar.ElapsedMonths(start, end), true), nil
}

func walkBackProductive(end time.Time, months float64, productive func(time.Month) bool) (time.Time, error) {
	start := end
	worked := 0.0
	for steps := 0; worked < months; steps++ {
		if steps >= MaxBackwardMonths {
			return time.Time{}, fmt.Errorf("%w: %.2f months not reached within %d months", ErrRestrictionCalendar, months, MaxBackwardMonths)
		}
		start = calendar.AddMonths(start, -1)
		if productive(start.Month()) {
			worked++
		}
	}
	return start, nil
}
