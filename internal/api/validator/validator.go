package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pipecrm/internal/models"
)

// ValidationErrors wraps the validator's ValidationErrors so the HTTP error
// handler can detect and format them.
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator as an echo.Validator.
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

func New() echo.Validator {
	v := playgroundvalidator.New()

	// Report field names as their json tags.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	register := func(tag string, fn playgroundvalidator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %s: %v", tag, err))
		}
	}
	register("lead_status", oneOf(
		models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusQualified,
		models.LeadStatusUnqualified, models.LeadStatusConverted,
	))
	register("deal_stage", oneOf(
		models.DealStageLead, models.DealStageQualified, models.DealStageProposal,
		models.DealStageNegotiation, models.DealStageClosedWon, models.DealStageClosedLost,
	))
	register("task_status", oneOf(
		models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone,
	))
	register("task_priority", oneOf(
		models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh,
	))
	register("campaign_status", oneOf(
		models.CampaignStatusDraft, models.CampaignStatusScheduled, models.CampaignStatusRunning,
		models.CampaignStatusCompleted, models.CampaignStatusFailed,
	))
	register("profile_role", oneOf(models.RoleAdmin, models.RoleMember, models.RoleViewer))

	return &CustomValidator{validator: v}
}

func oneOf(allowed ...string) playgroundvalidator.Func {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(fl playgroundvalidator.FieldLevel) bool {
		return set[fl.Field().String()]
	}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	fields := make([]string, 0, len(ve))
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// Format maps every failing field to a human-readable message. All failures
// are reported, not just the first.
func (ve ValidationErrors) Format() map[string]string {
	errMap := make(map[string]string, len(ve))
	for _, err := range ve {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "lead_status":
			errMap[field] = fmt.Sprintf("%s must be one of: new, contacted, qualified, unqualified, converted", field)
		case "deal_stage":
			errMap[field] = fmt.Sprintf("%s must be one of: lead, qualified, proposal, negotiation, closed_won, closed_lost", field)
		case "task_status":
			errMap[field] = fmt.Sprintf("%s must be one of: todo, in_progress, done", field)
		case "task_priority":
			errMap[field] = fmt.Sprintf("%s must be one of: low, medium, high", field)
		case "campaign_status":
			errMap[field] = fmt.Sprintf("%s must be one of: draft, scheduled, running, completed, failed", field)
		case "profile_role":
			errMap[field] = fmt.Sprintf("%s must be one of: admin, member, viewer", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, err.Tag())
		}
	}
	return errMap
}
