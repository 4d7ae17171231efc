package schedule

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	eventStatusTag  = "eventstatus"
	eventStatusText = fmt.Sprintf("status must be one of %s", strings.Join(AllStatuses, ", "))

	endAfterStartTag  = "endtimeafterstart"
	endAfterStartText = "end_time must be after start_time"
)

func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(eventStatusTag, core.OneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, eventStatusTag, eventStatusText)

	validate.RegisterStructValidation(eventStructValidation, NewEvent{}, UpdateEvent{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

// eventStructValidation checks that the event ends after it starts.
func eventStructValidation(sl validator.StructLevel) {
	var start, end string
	switch e := sl.Current().Interface().(type) {
	case NewEvent:
		start, end = e.StartTime, e.EndTime
	case UpdateEvent:
		start, end = e.StartTime, e.EndTime
	}
	startAt, err := time.Parse(core.ClockLayout, start)
	if err != nil {
		return // reported by `clock`
	}
	endAt, err := time.Parse(core.ClockLayout, end)
	if err != nil {
		return
	}
	if !endAt.After(startAt) {
		sl.ReportError(end, "end_time", "EndTime", endAfterStartTag, "")
	}
}
