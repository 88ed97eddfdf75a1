package homework

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/homework/core"
)

// Record is the homework due for one subject.
type Record struct {
	Subject string
	DueDate null.Time // invalid: no due date
	Details string
}

func (r Record) HasDueDate() bool {
	return r.DueDate.Valid
}

// DueDateString returns the due date formatted for an `input[type=date]` ("" when unset).
func (r Record) DueDateString() string {
	return FormatDate(r.DueDate)
}

type recordJSON struct {
	Subject string `json:"subject"`
	DueDate string `json:"due_date"`
	Details string `json:"details"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Subject: r.Subject,
		DueDate: r.DueDateString(),
		Details: r.Details,
	})
}

// Form is the raw user input for one record, as submitted by the web form or the CLI.
type Form struct {
	Subject string `form:"subject" json:"subject" validate:"required"`
	DueDate string `form:"due_date" json:"due_date"`
	Details string `form:"details" json:"details"`
}

// Clean trims all fields.
func (f *Form) Clean() {
	f.Subject = core.CleanString(f.Subject)
	f.DueDate = core.CleanString(f.DueDate)
	f.Details = core.CleanString(f.Details)
}

func (f *Form) Validate(validate *validator.Validate) error {
	f.Clean()
	return validate.Struct(f)
}

// Record converts the form into a Record. An unparseable due date becomes "no date".
func (f Form) Record() Record {
	return Record{
		Subject: f.Subject,
		DueDate: ParseDate(f.DueDate),
		Details: f.Details,
	}
}
