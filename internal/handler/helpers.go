package handler

import (
	"errors"
	"net/http"
	"reflect"

	"facturador/internal/apierror"
	"facturador/internal/apperrors"
	"facturador/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// "unidad" checks a line unit against the admitted set, kept in one place
	// in the model instead of repeated in oneof tags.
	_ = validate.RegisterValidation("unidad", func(fl validator.FieldLevel) bool {
		for _, u := range model.Unidades {
			if fl.Field().String() == u {
				return true
			}
		}
		return false
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes. Storage failures are
// logged by the middleware chain; the client only sees the safe detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrTransicionInvalida),
		errors.Is(err, apperrors.ErrDocumentoInmutable):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, apperrors.ErrTipoImpositivoInvalido),
		errors.Is(err, apperrors.ErrDocumentoVacio),
		errors.Is(err, apperrors.ErrSerieDesconocida):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
