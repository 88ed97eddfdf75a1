package homework

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/homework/core"
)

func TestRecord_MarshalJSON(t *testing.T) {
	rec := Record{Subject: "Math", DueDate: null.TimeFrom(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)), Details: "Chapter 4"}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject":"Math","due_date":"2024-05-01","details":"Chapter 4"}`, string(data))

	data, err = json.Marshal(Record{Subject: "History"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject":"History","due_date":"","details":""}`, string(data))
}

func TestForm_Validate(t *testing.T) {
	translator := core.NewTranslator()
	validate := newValidate(translator)

	form := Form{Subject: "  ", Details: "x"}
	err := core.TranslateValidationErrors(form.Validate(validate), translator)
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.Equal(t, "subject: this field is required", err.Error())

	form = Form{Subject: " Math ", DueDate: " 2024-05-01", Details: "Chapter 4 "}
	require.NoError(t, form.Validate(validate))
	assert.Equal(t, Record{
		Subject: "Math",
		DueDate: null.TimeFrom(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
		Details: "Chapter 4",
	}, form.Record())
}

func TestRecord_dueDate(t *testing.T) {
	rec := Form{Subject: "History", DueDate: "0001-01-01"}.Record()
	assert.True(t, rec.HasDueDate())
	assert.Equal(t, "0001-01-01", rec.DueDateString())

	rec = Form{Subject: "History"}.Record()
	assert.False(t, rec.HasDueDate())
	assert.Equal(t, "", rec.DueDateString())
}
