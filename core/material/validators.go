package material

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	materialTypeTag  = "materialtype"
	materialTypeText = fmt.Sprintf("type must be one of %s", strings.Join(AllTypes, ", "))
)

func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(materialTypeTag, core.OneOfValidation(AllTypes))
	core.RegisterCustomTranslation(validate, translator, materialTypeTag, materialTypeText)
}
