package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/migrations"
)

func TestConstraintSpecs_DeclaredInSchema(t *testing.T) {
	names, err := migrations.Names()
	require.NoError(t, err)

	var schema strings.Builder
	for _, name := range names {
		script, err := migrations.Read(name)
		require.NoError(t, err)
		schema.WriteString(script)
	}

	for _, spec := range ConstraintSpecs() {
		if spec.InStorage {
			assert.Contains(t, schema.String(), spec.Name, "constraint %s is not declared in migrations", spec.Name)
		} else {
			assert.NotContains(t, schema.String(), spec.Name)
		}
	}
}

func TestConstraintSpecs_KindsAreKnown(t *testing.T) {
	for _, spec := range ConstraintSpecs() {
		assert.NotEqual(t, "unknown", KindName(spec.Kind), spec.Name)
		assert.NotEmpty(t, spec.Field, spec.Name)
		assert.NotEmpty(t, spec.Table, spec.Name)
	}
}

func TestViolation(t *testing.T) {
	err := Violation(ConstraintServiceValidPresentation)

	assert.True(t, errors.Is(err, ErrInvalidEnum))
	assert.Equal(t, "presentation", err.Field)
	assert.Equal(t, ConstraintServiceValidPresentation, err.Constraint)
	assert.ElementsMatch(t, []string{"in_person", "online", "hybrid"}, err.Allowed)
	assert.Contains(t, err.Error(), "allowed: ")
}

func TestMustConstraint_PanicsOnUnknownName(t *testing.T) {
	assert.Panics(t, func() { MustConstraint("no_such_constraint") })

	_, ok := LookupConstraint("no_such_constraint")
	assert.False(t, ok)
}

func TestAsValidationError_Wrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), NewOverlapError("start_time", "overlap", 12))

	vErr, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, int64(12), vErr.ConflictID)
	assert.Equal(t, "overlap", vErr.KindName())
	assert.Contains(t, vErr.Error(), "conflicts with id=12")
}
