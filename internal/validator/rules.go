package validator

import (
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"smarthire_backend/internal/models"
)

var phonePattern = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации - ошибка программиста, запускаться нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-job-type", oneOfStrings(
		string(models.JobTypeFullTime), string(models.JobTypePartTime), string(models.JobTypeContract),
		string(models.JobTypeInternship), string(models.JobTypeFreelance),
	))
	mustRegister("is-experience-level", oneOfStrings(
		string(models.ExperienceEntry), string(models.ExperienceMid),
		string(models.ExperienceSenior), string(models.ExperienceExecutive),
	))
	mustRegister("is-company-size", oneOfStrings(
		string(models.CompanySizeTiny), string(models.CompanySizeSmall), string(models.CompanySizeMedium),
		string(models.CompanySizeLarge), string(models.CompanySizeHuge),
	))
	// Модератор не может вручную вернуть вакансию в pending
	mustRegister("is-job-status", oneOfStrings(
		string(models.JobStatusApproved), string(models.JobStatusRejected), string(models.JobStatusExpired),
	))
	mustRegister("is-plan", oneOfStrings(
		string(models.PlanFree), string(models.PlanStandard), string(models.PlanPremium),
	))
	mustRegister("is-payment-status", oneOfStrings(
		string(models.PaymentStatusPending), string(models.PaymentStatusCompleted),
		string(models.PaymentStatusFailed), string(models.PaymentStatusRefunded),
	))
	mustRegister("is-application-status", oneOfStrings(
		string(models.ApplicationStatusShortlisted), string(models.ApplicationStatusInterviewed),
		string(models.ApplicationStatusRejected), string(models.ApplicationStatusHired),
	))

	// Строка из одних пробелов проходит 'required' и 'min', но после TrimSpace пуста
	mustRegister("notblank", validators.NotBlank)
	mustRegister("phone", validatePhone)
	mustRegister("year", validateYear)
	mustRegister("future", validateFuture)
	mustRegister("not-future", validateNotFuture)
}

// oneOfStrings строит правило для строковых enum-ов. Пустое значение пропускаем, для этого есть 'required'.
func oneOfStrings(allowed ...string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := set[value]
		return ok
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phonePattern.MatchString(value)
}

func validateYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year >= 1900 && year <= int64(time.Now().Year())
}

func validateFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(time.Now())
}

func validateNotFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	return !t.After(time.Now())
}
