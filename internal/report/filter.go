package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for filter dates
const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Filter narrows the shipment record set a report is built from. All fields
// are optional; set fields compose conjunctively. An empty filter selects
// every record.
type Filter struct {
	StoreName   string `json:"store_name,omitempty" validate:"omitempty,max=200"`
	CourierName string `json:"courier_name,omitempty" validate:"omitempty,max=200"`
	DateFrom    string `json:"date_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo      string `json:"date_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// FilterError reports the offending field of a malformed filter
type FilterError struct {
	Field  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter field %s: %s", e.Field, e.Reason)
}

// Validate checks the filter and returns a *FilterError naming the first
// offending field. It must pass before the filter touches the store.
func (f Filter) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &FilterError{
			Field:  wireFieldName(fe.StructField()),
			Reason: reasonForTag(fe),
		}
	}

	return &FilterError{Field: "filter", Reason: err.Error()}
}

// Where builds the conjunctive SQL predicate for the filter with positional
// parameters. Values are never interpolated into the clause. An empty filter
// yields an empty clause and no arguments. Callers must Validate first;
// unparseable dates are skipped here rather than guessed at.
func (f Filter) Where() (string, []any) {
	var conds []string
	var args []any

	if f.StoreName != "" {
		args = append(args, f.StoreName)
		conds = append(conds, fmt.Sprintf("store_name = $%d", len(args)))
	}
	if f.CourierName != "" {
		args = append(args, f.CourierName)
		conds = append(conds, fmt.Sprintf("courier_name = $%d", len(args)))
	}
	if f.DateFrom != "" {
		if t, err := time.Parse(DateLayout, f.DateFrom); err == nil {
			args = append(args, t)
			conds = append(conds, fmt.Sprintf("order_date >= $%d", len(args)))
		}
	}
	if f.DateTo != "" {
		if t, err := time.Parse(DateLayout, f.DateTo); err == nil {
			args = append(args, endOfDay(t))
			conds = append(conds, fmt.Sprintf("order_date <= $%d", len(args)))
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// IsZero reports whether no filter field is set
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// endOfDay normalizes a date to 23:59:59.999 so DateTo is inclusive of the
// entire calendar day.
func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Millisecond)
}

// wireFieldName maps struct field names to their query parameter names
func wireFieldName(structField string) string {
	switch structField {
	case "StoreName":
		return "store_name"
	case "CourierName":
		return "courier_name"
	case "DateFrom":
		return "date_from"
	case "DateTo":
		return "date_to"
	default:
		return structField
	}
}

// reasonForTag renders a human-readable reason for a failed validation tag
func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", DateLayout)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
