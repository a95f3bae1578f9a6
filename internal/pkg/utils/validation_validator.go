package utils

import (
	"medibook-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate      *validator.Validate
	dateKeyRegex  = regexp.MustCompile(constvars.RegexDateKey)
	slotTimeRegex = regexp.MustCompile(constvars.RegexSlotTime)
	phoneRegex    = regexp.MustCompile(constvars.RegexPhoneNumberGeneral)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("date_key", validateDateKey)
	validate.RegisterValidation("slot_time", validateSlotTime)
	validate.RegisterValidation("payment_provider", validatePaymentProvider)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar validates a single value against a tag list, e.g. "required,payment_provider".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func validateDateKey(fl validator.FieldLevel) bool {
	return dateKeyRegex.MatchString(fl.Field().String())
}

func validateSlotTime(fl validator.FieldLevel) bool {
	return slotTimeRegex.MatchString(fl.Field().String())
}

func validatePaymentProvider(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.PaymentProviderKhalti || value == constvars.PaymentProviderStripe
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
