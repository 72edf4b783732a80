package service

import (
	"errors"

	"shv-inventory/internal/model"

	"github.com/go-playground/validator/v10"
)

// NewValidator 建立含 category / working_group 自訂規則的 validator，
// Echo 的 CustomValidator 與 service 共用
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.IsCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("working_group", func(fl validator.FieldLevel) bool {
		return model.IsWorkingGroup(fl.Field().String())
	})
	return v
}

var validate = NewValidator()

// validationError 將 validator 的錯誤轉為 ValidationError，只回報第一個欄位
func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return newError(KindValidation, fe.Field(), "%s failed on '%s'", fe.Field(), fe.Tag())
	}
	return newError(KindValidation, "", "%v", err)
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}
	return nil
}

func validateVar(field string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return newError(KindValidation, field, "%s failed on '%s'", field, tag)
	}
	return nil
}

