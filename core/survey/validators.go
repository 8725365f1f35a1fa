package survey

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-surveys/core"
)

var (
	roleTag  = "role"
	roleText = fmt.Sprintf("role must be one of %q or %q", RoleStudent, RoleParent)
)

// InitValidators registers the survey validators. core.InitValidators must be called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// roleValidation checks that the field is a known Role.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).IsValid()
}

// validateRecords drops the records that do not satisfy the role rules and reports them.
func validateRecords(validate *validator.Validate, role Role, records []Record) ([]Record, *MalformedInputWarning) {
	valid := make([]Record, 0, len(records))
	var fldErrs []core.FieldError

	for i, rec := range records {
		err := rec.Validate(validate, role)
		if err == nil {
			valid = append(valid, rec)
			continue
		}
		vErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			fldErrs = append(fldErrs, core.FieldError{Field: fmt.Sprintf("questions[%d]", i), Error: err.Error()})
			continue
		}
		for _, vErr := range vErrs {
			fldErrs = append(fldErrs, core.FieldError{
				Field: fmt.Sprintf("questions[%d].%s", i, vErr.Field()),
				Error: vErr.Tag(),
			})
		}
	}

	if fldErrs == nil {
		return valid, nil
	}
	return valid, &MalformedInputWarning{
		Reason: fmt.Sprintf("%d invalid %s question(s) dropped", len(records)-len(valid), role),
		Fields: fldErrs,
	}
}
