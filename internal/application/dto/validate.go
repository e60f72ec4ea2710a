package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
)

var validate = newValidator()

// newValidator reporta los campos con el nombre que ve el cliente: la etiqueta json,
// o query en los filtros de listado.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			switch name {
			case "-":
				return ""
			case "":
				continue
			}
			return name
		}
		return f.Name
	})
	return v
}

// Validate revisa las etiquetas `validate` del request y traduce el primer fallo a
// *domain.ValidationError con el nombre json del campo.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	return domain.NewValidationError(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "oneof":
		return fmt.Sprintf("debe ser uno de [%s]", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}
