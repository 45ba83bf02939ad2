package promptside

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/promptside/hooklistener/pkg/halx"
)

// ProblemContentType identifies a structured problem document response body.
const ProblemContentType = "application/problem+json"

// Validation rule names the API reports in problem documents.
const (
	ValidationConflicting  = "conflictingValue"
	ValidationInvalid      = "notValid"
	ValidationMissing      = "isEmpty"
	ValidationNotNumber    = "notDigits"
	ValidationTooLong      = "stringLengthTooLong"
	ValidationTooShort     = "stringLengthTooShort"
	ValidationUnrecognized = "unrecognized"
)

// ValidationError is a single field-level validation failure, keyed by the
// input context (usually the field name) and the rule that rejected it.
type ValidationError struct {
	Context string
	Type    string
	Message string
}

// Problem is a machine-readable error body per the API's
// application/problem+json contract.
type Problem struct {
	Type             string
	Title            string
	Status           int
	Detail           string
	ValidationErrors []ValidationError
}

// ParseProblem decodes a problem document body. Scalar fields use the strict
// coercion contract: present-but-mistyped values are errors. Malformed
// entries inside validation_messages are skipped, matching the API's
// loosely-specified nesting.
func ParseProblem(data []byte) (*Problem, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("promptside: parse problem document: %w", err)
	}

	fields := halx.Fields(raw)
	p := &Problem{}

	for key, dst := range map[string]*string{
		"type":   &p.Type,
		"title":  &p.Title,
		"detail": &p.Detail,
	} {
		v, err := fields.String(key)
		if err != nil {
			return nil, err
		}
		if v != nil {
			*dst = *v
		}
	}

	status, err := fields.Int("status")
	if err != nil {
		return nil, err
	}
	if status != nil {
		p.Status = int(*status)
	}

	if messages, ok := raw["validation_messages"].(map[string]any); ok {
		p.ValidationErrors = parseValidationMessages(messages)
	}

	return p, nil
}

// parseValidationMessages flattens the context -> rule -> message nesting.
// Output order is stable (sorted by context, then rule) so that rendered
// messages are deterministic.
func parseValidationMessages(messages map[string]any) []ValidationError {
	contexts := make([]string, 0, len(messages))
	for context := range messages {
		contexts = append(contexts, context)
	}
	sort.Strings(contexts)

	var errs []ValidationError
	for _, context := range contexts {
		rules, ok := messages[context].(map[string]any)
		if !ok {
			continue
		}

		names := make([]string, 0, len(rules))
		for name := range rules {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			message, ok := rules[name].(string)
			if !ok {
				continue
			}
			errs = append(errs, ValidationError{
				Context: context,
				Type:    name,
				Message: message,
			})
		}
	}
	return errs
}

// HasValidationErrors reports whether the problem carried any field-level
// validation failures.
func (p *Problem) HasValidationErrors() bool {
	return len(p.ValidationErrors) > 0
}

// ErrorsForContext returns the validation errors for one input context.
func (p *Problem) ErrorsForContext(context string) []ValidationError {
	var out []ValidationError
	for _, v := range p.ValidationErrors {
		if v.Context == context {
			out = append(out, v)
		}
	}
	return out
}

// DisplayString renders the problem for humans: multiple validation messages
// become a bulleted list, a single one is used verbatim, else the detail,
// else the title.
func (p *Problem) DisplayString() string {
	if len(p.ValidationErrors) > 1 {
		lines := make([]string, 0, len(p.ValidationErrors))
		for _, v := range p.ValidationErrors {
			lines = append(lines, "- "+v.Message)
		}
		return strings.Join(lines, "\n")
	}
	if len(p.ValidationErrors) == 1 {
		return p.ValidationErrors[0].Message
	}
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
