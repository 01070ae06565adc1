package suggestion

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ewanblake/aihub/core"
)

// Priority levels
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// StatusSuccess is the one status surfaced after a fully successful dispatch.
const StatusSuccess = "Suggestion submitted successfully!"

// FailureStatus collapses any dispatch failure into the user-facing status string.
func FailureStatus(detail string) string {
	return "Failed to submit suggestion: " + detail
}

// NewSuggestion contains the five contact-form fields of one submission.
type NewSuggestion struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Priority string `json:"priority" validate:"required,priority"`
	Subject  string `json:"subject" validate:"required"`
	Details  string `json:"details" validate:"required"`
}

func (ns *NewSuggestion) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Priority = core.CleanString(ns.Priority)
	ns.Subject = core.CleanString(ns.Subject)
	ns.Details = core.CleanString(ns.Details)
	return validate.Struct(ns)
}

// body concatenates the fields under fixed section labels, in fixed order.
func (ns NewSuggestion) body() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "Name: %s\n", ns.Name)
	fmt.Fprintf(b, "Email: %s\n", ns.Email)
	fmt.Fprintf(b, "Suggested Change or Addition: %s\n", ns.Subject)
	fmt.Fprintf(b, "Priority Level: %s\n", ns.Priority)
	fmt.Fprintf(b, "Details of Suggestion: %s\n", ns.Details)
	return b.String()
}

// Submission is the outcome of one dispatch attempt; Status is the only
// durable record of the attempt.
type Submission struct {
	Status string `json:"status"`
	Sent   bool   `json:"sent"`
}
