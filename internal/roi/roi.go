// Package roi estimates the savings and return of an ERP rollout from a few
// company figures. The numbers are illustrative, not a quote.
package roi

import (
	"errors"
	"fmt"
	"math"
)

const (
	hoursPerWeek         = 40
	manualShare          = 0.3  // share of labor spent on manual tasks
	errorCostShare       = 0.1  // errors cost this share of labor
	efficiencyGain       = 0.7  // manual time removed by the ERP
	errorReductionShare  = 0.7  // errors removed by the ERP
	costPerEmployee      = 2000 // implementation cost
	annualMaintenanceCut = 0.2  // yearly maintenance, share of implementation
)

var ErrInvalidInput = errors.New("invalid roi input")

// Inputs are the calculator's company figures.
type Inputs struct {
	Employees   int
	AvgSalary   float64
	ManualHours float64 // hours per week on manual processes
	ErrorRate   float64 // percent
}

// DefaultInputs are the calculator's starting slider positions.
var DefaultInputs = Inputs{Employees: 50, AvgSalary: 50000, ManualHours: 10, ErrorRate: 15}

type Estimate struct {
	AnnualLaborCost    float64
	ManualProcessCost  float64
	ErrorCost          float64
	TotalCurrentCost   float64
	EfficiencyGain     float64
	ErrorReduction     float64
	TotalSavings       float64
	ImplementationCost float64
	AnnualROI          float64 // percent
	PaybackMonths      float64 // +Inf when nothing is saved
}

func (in Inputs) Validate() error {
	switch {
	case in.Employees <= 0:
		return fmt.Errorf("%w: employees must be positive, got %d", ErrInvalidInput, in.Employees)
	case !(in.AvgSalary > 0) || math.IsInf(in.AvgSalary, 1):
		return fmt.Errorf("%w: salary must be positive, got %v", ErrInvalidInput, in.AvgSalary)
	case !(in.ManualHours >= 0 && in.ManualHours <= 168):
		return fmt.Errorf("%w: manual hours %v outside [0, 168]", ErrInvalidInput, in.ManualHours)
	case !(in.ErrorRate >= 0 && in.ErrorRate <= 100):
		return fmt.Errorf("%w: error rate %v outside [0, 100]", ErrInvalidInput, in.ErrorRate)
	}
	return nil
}

// Calculate runs the estimate for in.
func Calculate(in Inputs) (Estimate, error) {
	if err := in.Validate(); err != nil {
		return Estimate{}, err
	}

	var e Estimate
	e.AnnualLaborCost = float64(in.Employees) * in.AvgSalary
	e.ManualProcessCost = (in.ManualHours / hoursPerWeek) * e.AnnualLaborCost * manualShare
	e.ErrorCost = e.AnnualLaborCost * (in.ErrorRate / 100) * errorCostShare
	e.TotalCurrentCost = e.ManualProcessCost + e.ErrorCost

	e.EfficiencyGain = e.ManualProcessCost * efficiencyGain
	e.ErrorReduction = e.ErrorCost * errorReductionShare
	e.TotalSavings = e.EfficiencyGain + e.ErrorReduction

	e.ImplementationCost = float64(in.Employees) * costPerEmployee
	e.AnnualROI = (e.TotalSavings - e.ImplementationCost*annualMaintenanceCut) / e.ImplementationCost * 100
	if e.TotalSavings > 0 {
		e.PaybackMonths = e.ImplementationCost / (e.TotalSavings / 12)
	} else {
		e.PaybackMonths = math.Inf(1)
	}
	return e, nil
}
