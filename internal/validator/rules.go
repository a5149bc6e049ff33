package validator

import (
	"log"
	"regexp"

	"masseurmatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// registerCustomRules registers the domain validation tags on the validator
// instance. Registration failures abort startup.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'e164_phone': international phone format with leading +
	mustRegister("e164_phone", func(fl validator.FieldLevel) bool {
		return e164Pattern.MatchString(fl.Field().String())
	})

	// 'plan': known subscription tier
	mustRegister("plan", func(fl validator.FieldLevel) bool {
		switch models.SubscriptionPlan(fl.Field().String()) {
		case models.PlanFree, models.PlanStandard, models.PlanPro, models.PlanElite:
			return true
		}
		return false
	})

	// 'rate_context': incall or outcall
	mustRegister("rate_context", func(fl validator.FieldLevel) bool {
		switch models.RateContext(fl.Field().String()) {
		case models.ContextIncall, models.ContextOutcall:
			return true
		}
		return false
	})
}
