package class

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	classStatusTag  = "classstatus"
	classStatusText = fmt.Sprintf("status must be one of %s", strings.Join(AllStatuses, ", "))

	endAfterStartTag  = "enddateafterstart"
	endAfterStartText = "end_date cannot be before start_date"
)

// RegisterValidators registers the class validators and their translations.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(classStatusTag, core.OneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, classStatusTag, classStatusText)

	validate.RegisterStructValidation(classStructValidation, NewClass{}, UpdateClass{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

// classStructValidation checks that the class does not end before it starts.
// Dates are YYYY-MM-DD so they compare as strings.
func classStructValidation(sl validator.StructLevel) {
	var start, end string
	switch c := sl.Current().Interface().(type) {
	case NewClass:
		start, end = c.StartDate, c.EndDate
	case UpdateClass:
		start, end = c.StartDate, c.EndDate
	}
	if start != "" && end != "" && end < start {
		sl.ReportError(end, "end_date", "EndDate", endAfterStartTag, "")
	}
}
