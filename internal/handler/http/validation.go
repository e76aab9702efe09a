package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/go-playground/validator/v10"
)

const (
	validationProblemType  = "https://example.com/problems/validation"
	validationProblemTitle = "Invalid input"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationDetail renders the first failed rule of err as a sentence.
func validationDetail(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}

	fe := fieldErrors[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("The '%s' field is required.", fe.Field())
	}
	return fmt.Sprintf("The '%s' field failed the '%s' rule.", fe.Field(), fe.Tag())
}

// writeValidationProblem answers 400 with a problem+json body.
func writeValidationProblem(w http.ResponseWriter, r *http.Request, detail string) {
	err := models.NewProblemDetails(http.StatusBadRequest,
		validationProblemType,
		validationProblemTitle,
		detail,
		r.URL.Path,
	).Write(w)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing problem details")
	}
}
