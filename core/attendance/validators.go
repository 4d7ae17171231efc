package attendance

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	attendanceStatusTag  = "attendancestatus"
	attendanceStatusText = fmt.Sprintf("status must be one of %s", strings.Join(AllStatuses, ", "))
)

func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(attendanceStatusTag, core.OneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, attendanceStatusTag, attendanceStatusText)
}
