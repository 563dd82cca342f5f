package handler

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/timecalc"
)

func registerValidations(validate *validator.Validate, trans ut.Translator) error {
	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag: "employee",
			fn: func(fl validator.FieldLevel) bool {
				return domain.Employee(fl.Field().String()).Valid()
			},
			message: "{0} must be one of nikita, andrey, denis",
		},
		{
			tag: "clock",
			fn: func(fl validator.FieldLevel) bool {
				return timecalc.ValidClock(fl.Field().String())
			},
			message: "{0} must be a time of day in HH:MM format",
		},
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		message := rule.message
		register := func(tr ut.Translator) error {
			return tr.Add(rule.tag, message, true)
		}
		translate := func(tr ut.Translator, fe validator.FieldError) string {
			t, _ := tr.T(fe.Tag(), fe.Field())
			return t
		}
		if err := validate.RegisterTranslation(rule.tag, trans, register, translate); err != nil {
			return err
		}
	}

	return nil
}
