package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/apierror"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
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

// respondErroNegocio maps selection rejections to a structured 422 payload —
// the frontend translates Codigo per group — and everything else to 400.
func respondErroNegocio(c *gin.Context, err error) {
	if sel, ok := pricing.AsErroSelecao(err); ok {
		opcao := ""
		if sel.OpcaoID != uuid.Nil {
			opcao = sel.OpcaoID.String()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewSelection(string(sel.Codigo), sel.Grupo, opcao, sel.Detalhe))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
