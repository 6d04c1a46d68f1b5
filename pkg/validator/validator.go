package validator

import (
	"reflect"
	"strings"

	"hotel-ortus/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their JSON name so clients see what they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("room_type", func(fl validator.FieldLevel) bool {
		return entity.RoomType(fl.Field().String()).IsValid()
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + minMaxUnit(e)
			case "max":
				errors[field] = field + " must be at most " + e.Param() + minMaxUnit(e)
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "datetime":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "room_type":
				errors[field] = field + " must be one of: " + roomTypeList()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

func minMaxUnit(e validator.FieldError) string {
	switch e.Kind() {
	case reflect.String:
		return " characters"
	default:
		return ""
	}
}

func roomTypeList() string {
	types := entity.RoomTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
