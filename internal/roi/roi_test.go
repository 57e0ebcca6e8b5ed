package roi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDefaults(t *testing.T) {
	e, err := Calculate(DefaultInputs)
	require.NoError(t, err)

	assert.Equal(t, 2_500_000.0, e.AnnualLaborCost)
	assert.InDelta(t, 187_500, e.ManualProcessCost, 1e-6)
	assert.InDelta(t, 37_500, e.ErrorCost, 1e-6)
	assert.InDelta(t, 225_000, e.TotalCurrentCost, 1e-6)
	assert.InDelta(t, 157_500, e.TotalSavings, 1e-6)
	assert.Equal(t, 100_000.0, e.ImplementationCost)
	assert.InDelta(t, 137.5, e.AnnualROI, 1e-9)
	assert.InDelta(t, 7.619, e.PaybackMonths, 1e-3)
}

func TestCalculateNoSavings(t *testing.T) {
	e, err := Calculate(Inputs{Employees: 10, AvgSalary: 30000})
	require.NoError(t, err)
	assert.Zero(t, e.TotalSavings)
	assert.Equal(t, -20.0, e.AnnualROI)
	assert.True(t, math.IsInf(e.PaybackMonths, 1))
}

func TestCalculateRejectsBadInput(t *testing.T) {
	bad := []Inputs{
		{Employees: 0, AvgSalary: 1},
		{Employees: 1, AvgSalary: 0},
		{Employees: 1, AvgSalary: 1, ManualHours: -1},
		{Employees: 1, AvgSalary: 1, ManualHours: 200},
		{Employees: 1, AvgSalary: 1, ErrorRate: 101},
		{Employees: 1, AvgSalary: math.NaN()},
		{Employees: 1, AvgSalary: math.Inf(1)},
		{Employees: 1, AvgSalary: 1, ManualHours: math.NaN()},
		{Employees: 1, AvgSalary: 1, ErrorRate: math.NaN()},
	}
	for _, in := range bad {
		_, err := Calculate(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}
