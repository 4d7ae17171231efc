package course

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	courseLevelTag  = "courselevel"
	courseLevelText = fmt.Sprintf("level must be one of %s", strings.Join(AllLevels, ", "))

	courseStatusTag  = "coursestatus"
	courseStatusText = fmt.Sprintf("status must be one of %s", strings.Join(AllStatuses, ", "))
)

// RegisterValidators registers the course validators and their translations.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(courseLevelTag, core.OneOfValidation(AllLevels))
	core.RegisterCustomTranslation(validate, translator, courseLevelTag, courseLevelText)

	_ = validate.RegisterValidation(courseStatusTag, core.OneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, courseStatusTag, courseStatusText)
}
