package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(nil, FieldError{Field: "subject", Error: "required"}, FieldError{Field: "due_date", Error: "bad"})
	assert.Equal(t, "subject: required; due_date: bad", err.Error())
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(errors.Wrap(err, "saving")))

	err = NewValidationError(errors.New("invalid payload"))
	assert.Equal(t, "invalid payload", err.Error())

	assert.False(t, IsValidationError(errors.New("boom")))
}

func TestShutdownError(t *testing.T) {
	err := NewShutdownError("integrity issue")
	assert.Equal(t, "integrity issue", err.Error())
	assert.True(t, IsShutdown(err))
	assert.True(t, IsShutdown(errors.Wrap(err, "request")))
	assert.False(t, IsShutdown(errors.New("integrity issue")))
}

func TestTranslateValidationErrors(t *testing.T) {
	translator := NewTranslator()
	validate := validator.New()
	InitValidators(validate, translator)

	type payload struct {
		Subject string `form:"subject" validate:"required"`
		Details string `json:"details" validate:"max=3"`
		Note    string `validate:"required"`
	}
	err := TranslateValidationErrors(validate.Struct(payload{Details: "toolong"}), translator)
	vErr, ok := err.(*ValidationError)
	if assert.True(t, ok, "got %T", err) {
		assert.Equal(t, []FieldError{
			{Field: "subject", Error: "this field is required"},
			{Field: "details", Error: "details must be a maximum of 3 characters in length"},
			{Field: "Note", Error: "this field is required"},
		}, vErr.Fields)
	}

	boom := errors.New("boom")
	assert.Equal(t, boom, TranslateValidationErrors(boom, translator))
	assert.Nil(t, TranslateValidationErrors(nil, translator))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Math", CleanString("  Math\t\n"))
	assert.Equal(t, "math", CleanString(" MATH ", true))
	assert.Equal(t, "", CleanString("   "))
}
