package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/massing/internal/errors"
)

func TestValidationBuilderEmpty(t *testing.T) {
	assert.NoError(t, errors.NewValidationBuilder().Build())
}

func TestValidationBuilder(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("Store").
		Fieldf("Scale.X", "must be positive, got %g", -1.0).
		Field("Scale.X", "must be finite").
		Build()
	require.Error(t, err)

	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t,
		"INVALID_ARGUMENT: validation failed: Scale.X: must be positive, got -1, must be finite; Store: is required",
		err.Error())

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	fields := e.Meta["validation_errors"].(map[string][]string)
	assert.Len(t, fields["Scale.X"], 2)
}
