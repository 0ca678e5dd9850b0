package validation

import (
	"regexp"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// ClockPattern matches a 24 hour HH:MM time of day
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// DatePattern matches a calendar date in YYYY-MM-DD form
	DatePattern = `^\d{4}-\d{2}-\d{2}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Clock *regexp.Regexp
	Date  *regexp.Regexp
}{
	Clock: regexp.MustCompile(ClockPattern),
	Date:  regexp.MustCompile(DatePattern),
}

// Custom tag names
const (
	TagClock   = "clock"
	TagWeekday = "weekday"
	TagDate    = "date"
	TagStatus  = "subtopic_status"
)

// RegisterRules installs the custom tags on v. It is safe to call once per validator.
func RegisterRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagClock:   isClock,
		TagWeekday: isWeekday,
		TagDate:    isDate,
		TagStatus:  isSettableStatus,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isClock(fl validator.FieldLevel) bool {
	return CompiledPatterns.Clock.MatchString(fl.Field().String())
}

func isDate(fl validator.FieldLevel) bool {
	return CompiledPatterns.Date.MatchString(fl.Field().String())
}

func isWeekday(fl validator.FieldLevel) bool {
	_, ok := models.ParseWeekday(fl.Field().String())
	return ok
}

// PENDING is only ever the initial state.
func isSettableStatus(fl validator.FieldLevel) bool {
	switch models.SubTopicStatus(fl.Field().String()) {
	case models.SubTopicInProgress, models.SubTopicCompleted:
		return true
	}
	return false
}
