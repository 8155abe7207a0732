package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]int{"id": 7})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]int{"id": 7}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Title   string `validate:"required"`
		Status  string `validate:"omitempty,oneof=available occupied"`
		Price   int    `validate:"required,gt=0"`
		DueDate string `validate:"omitempty,datetime=2006-01-02"`
	}

	v := validator.New()
	err := v.Struct(req{Status: "demolished", Price: 10, DueDate: "31-12-2026"})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	resp := ValidationError(errs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Title is a required field")
	assert.Contains(t, resp.Error, "field Status must be one of: available occupied")
	assert.Contains(t, resp.Error, "field DueDate can contain only date in format 2006-01-02")
}
