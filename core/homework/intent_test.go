package homework

import (
	"net/url"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/homework/core"
)

func newValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func TestDecodeQuery(t *testing.T) {
	tests := []struct {
		subject string
		want    Intent
	}{
		{subject: "", want: List{}},
		{subject: "   ", want: List{}},
		{subject: "Math", want: Select{Subject: "Math"}},
		{subject: "  Math ", want: Select{Subject: "Math"}},
		{subject: "Histoire Géo", want: Select{Subject: "Histoire Géo"}},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DecodeQuery(tt.subject)); diff != "" {
				t.Errorf("DecodeQuery() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeForm(t *testing.T) {
	validate := newValidate(core.NewTranslator())
	may1 := null.TimeFrom(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		values url.Values
		want   Intent
	}{
		{name: "empty form", values: url.Values{}, want: List{}},
		{
			name:   "add",
			values: url.Values{"subject": {"Math"}, "due_date": {"2024-05-01"}, "details": {"Chapter 4"}, "add": {""}},
			want:   Upsert{Record: Record{Subject: "Math", DueDate: may1, Details: "Chapter 4"}},
		},
		{
			name:   "add trims fields",
			values: url.Values{"subject": {" Math "}, "due_date": {" 01/05/2024 "}, "details": {" Chapter 4\n"}, "add": {"Add"}},
			want:   Upsert{Record: Record{Subject: "Math", DueDate: may1, Details: "Chapter 4"}},
		},
		{
			name:   "add without date",
			values: url.Values{"subject": {"Math"}, "due_date": {""}, "details": {"Chapter 5"}, "add": {""}},
			want:   Upsert{Record: Record{Subject: "Math", Details: "Chapter 5"}},
		},
		{
			name:   "add with invalid date",
			values: url.Values{"subject": {"Math"}, "due_date": {"31/02/2024"}, "add": {""}},
			want:   Upsert{Record: Record{Subject: "Math"}},
		},
		{
			name:   "delete",
			values: url.Values{"subject": {"Math"}, "due_date": {"2024-05-01"}, "delete": {""}},
			want:   Delete{Subject: "Math"},
		},
		{
			name:   "both triggers: add wins",
			values: url.Values{"subject": {"Math"}, "details": {"x"}, "delete": {""}, "add": {""}},
			want:   Upsert{Record: Record{Subject: "Math", Details: "x"}},
		},
		{
			name:   "blank subject",
			values: url.Values{"subject": {"   "}, "details": {"x"}, "add": {""}},
			want:   List{},
		},
		{
			name:   "missing subject",
			values: url.Values{"delete": {""}},
			want:   List{},
		},
		{
			name:   "no trigger",
			values: url.Values{"subject": {"Math"}, "details": {"x"}},
			want:   List{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DecodeForm(tt.values, validate)); diff != "" {
				t.Errorf("DecodeForm() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
