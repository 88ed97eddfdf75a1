package homework

import (
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/homework/core"
)

// Trigger fields: their presence in a submitted form, not their value, selects the action.
const (
	TriggerAdd    = "add"
	TriggerDelete = "delete"
)

// Intent is what a request to the homework page asks for; one of List, Select, Upsert or Delete.
type Intent interface {
	intent()
}

type (
	// List shows all subjects with nothing selected.
	List struct{}

	// Select shows all subjects and prefills the given subject's fields.
	Select struct {
		Subject string
	}

	// Upsert saves a record, creating it or overwriting both of its fields.
	Upsert struct {
		Record Record
	}

	// Delete removes a subject's record.
	Delete struct {
		Subject string
	}
)

func (List) intent()   {}
func (Select) intent() {}
func (Upsert) intent() {}
func (Delete) intent() {}

// DecodeQuery decodes the intent of a page view from its `subject` query parameter.
func DecodeQuery(subject string) Intent {
	if subject = core.CleanString(subject); subject != "" {
		return Select{Subject: subject}
	}
	return List{}
}

// DecodeForm decodes the intent of a submitted form.
// A blank subject, or no trigger field, is a List: the submission is silently ignored.
// "add" wins when both trigger fields are present.
func DecodeForm(values url.Values, validate *validator.Validate) Intent {
	form := Form{
		Subject: values.Get("subject"),
		DueDate: values.Get("due_date"),
		Details: values.Get("details"),
	}
	if err := form.Validate(validate); err != nil {
		return List{}
	}

	if _, ok := values[TriggerAdd]; ok {
		return Upsert{Record: form.Record()}
	}
	if _, ok := values[TriggerDelete]; ok {
		return Delete{Subject: form.Subject}
	}
	return List{}
}
