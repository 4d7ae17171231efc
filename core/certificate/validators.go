package certificate

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/langcenter/core"
)

var (
	certStatusTag  = "certstatus"
	certStatusText = fmt.Sprintf("status must be one of %s", strings.Join(AllStatuses, ", "))

	issueDateTag  = "issuedaterequired"
	issueDateText = "an issued certificate needs an issue_date"
)

func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(certStatusTag, core.OneOfValidation(AllStatuses))
	core.RegisterCustomTranslation(validate, translator, certStatusTag, certStatusText)

	validate.RegisterStructValidation(certificateStructValidation, NewCertificate{}, UpdateCertificate{})
	core.RegisterCustomTranslation(validate, translator, issueDateTag, issueDateText)
}

// certificateStructValidation checks that an issued certificate has an issue date.
func certificateStructValidation(sl validator.StructLevel) {
	var status, date string
	switch c := sl.Current().Interface().(type) {
	case NewCertificate:
		status, date = c.Status, c.IssueDate
	case UpdateCertificate:
		status, date = c.Status, c.IssueDate
	}
	if status == StatusIssued && date == "" {
		sl.ReportError(date, "issue_date", "IssueDate", issueDateTag, "")
	}
}
