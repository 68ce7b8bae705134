package handlers

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CalendarService/internal/availability"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator возвращает общий валидатор с зарегистрированными правилами сервиса
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("availability_status", func(fl validator.FieldLevel) bool {
			_, err := availability.ParseStatus(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateStruct проверяет структуру запроса
func ValidateStruct(v interface{}) error {
	return Validator().Struct(v)
}

// FailedFields список "поле:правило" для нарушенных правил, для логов
func FailedFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return strings.Join(fields, ", ")
}

// FailedTag тег первого нарушенного правила для поля (пусто, если поле прошло проверку)
func FailedTag(err error, field string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	for _, fe := range verrs {
		if fe.Field() == field {
			return fe.Tag()
		}
	}
	return ""
}
