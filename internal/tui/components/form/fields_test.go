package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextField(t *testing.T) {
	t.Run("creation with default value", func(t *testing.T) {
		f := NewTextField(testStyles, "Title", "what needs doing", "hello")
		assert.Equal(t, "Title", f.Label())
		assert.Equal(t, "hello", f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewTextField(testStyles, "Title", "", "")
		field, cmd := f.Update(key("a"))
		assert.Nil(t, cmd)
		assert.Empty(t, field.Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := NewTextField(testStyles, "Title", "", "")
		f.Focus()
		assert.True(t, f.Focused())
		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("set value", func(t *testing.T) {
		f := NewTextField(testStyles, "Title", "", "")
		f.SetValue("typed text")
		assert.Equal(t, "typed text", f.Value())
	})
}

func TestTextAreaField(t *testing.T) {
	f := NewTextAreaField(testStyles, "Description", "", "line one")
	assert.Equal(t, "line one", f.Value())
	assert.Contains(t, f.View(), "Description")

	f.SetValue("replaced")
	assert.Equal(t, "replaced", f.Value())
}

func TestChoiceField(t *testing.T) {
	opts := []string{"Low", "Medium", "High"}

	t.Run("default selection", func(t *testing.T) {
		assert.Equal(t, "Medium", NewChoiceField(testStyles, "P", opts, "Medium").Value())
		assert.Equal(t, "Low", NewChoiceField(testStyles, "P", opts, "unknown").Value())
	})

	t.Run("cycles with wraparound", func(t *testing.T) {
		f := NewChoiceField(testStyles, "P", opts, "High")
		f.Focus()

		field, _ := f.Update(key("right"))
		assert.Equal(t, "Low", field.Value())

		field, _ = f.Update(key("left"))
		assert.Equal(t, "High", field.Value())
	})

	t.Run("ignores keys while blurred", func(t *testing.T) {
		f := NewChoiceField(testStyles, "P", opts, "Low")
		f.Update(key("right"))
		assert.Equal(t, "Low", f.Value())
	})

	t.Run("empty options", func(t *testing.T) {
		f := NewChoiceField(testStyles, "P", nil, "")
		assert.Empty(t, f.Value())
	})
}

func TestFieldValidation(t *testing.T) {
	errBad := errors.New("not a date")
	v := FieldValidation{
		Required:  true,
		MaxLength: 5,
		Check: func(s string) error {
			if s == "bad" {
				return errBad
			}
			return nil
		},
	}

	assert.Equal(t, "required", v.ValidateText("  "))
	assert.Equal(t, "maximum 5 characters", v.ValidateText("toolong"))
	assert.Equal(t, "not a date", v.ValidateText("bad"))
	assert.Empty(t, v.ValidateText("ok"))

	assert.Empty(t, FieldValidation{}.ValidateText(""))
}
