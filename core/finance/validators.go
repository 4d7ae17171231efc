package finance

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	financeTypeTag  = "financetype"
	financeTypeText = fmt.Sprintf("type must be one of %s", strings.Join(AllTypes, ", "))

	financeStatusTag  = "financestatus"
	financeStatusText = fmt.Sprintf("status must be one of %s", strings.Join(AllStatuses, ", "))
)

func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(financeTypeTag, core.OneOfValidation(AllTypes))
	core.RegisterCustomTranslation(validate, translator, financeTypeTag, financeTypeText)

	_ = validate.RegisterValidation(financeStatusTag, core.OneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, financeStatusTag, financeStatusText)
}
