package cli

import (
	"fmt"
	"os"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

// InputOptions reads a simulation input from a json or yaml file and overrides it with flags.
type InputOptions struct {
	InputFile string

	input   v1alpha1.SimulationInput
	flagSet *pflag.FlagSet
}

func (o *InputOptions) Bind(fs *pflag.FlagSet) {
	o.flagSet = fs

	fs.StringVarP(&o.InputFile, "file", "f", o.InputFile, "Path to a json or yaml file holding the input")
	fs.StringVar(&o.input.ScenarioName, "name", "", "Scenario name")
	fs.Float64Var(&o.input.MonthlyInvoiceVolume, "volume", 0, "Invoices processed per month")
	fs.Float64Var(&o.input.NumApStaff, "staff", 0, "Number of AP staff")
	fs.Float64Var(&o.input.AvgHoursPerInvoice, "hours-per-invoice", 0, "Average hours spent per invoice")
	fs.Float64Var(&o.input.HourlyWage, "wage", 0, "Hourly wage")
	fs.Float64Var(&o.input.ErrorRateManual, "error-rate", 0, "Manual error rate in percent")
	fs.Float64Var(&o.input.ErrorCost, "error-cost", 0, "Cost of a single error")
	fs.IntVar(&o.input.TimeHorizonMonths, "horizon", 0, "Time horizon in months")
	fs.Float64Var(&o.input.OneTimeImplementationCost, "implementation-cost", 0, "One-time implementation cost")
	fs.Float64Var(new(float64), "automated-cost", 0, "Running cost per automated invoice")
}

// Input merges the file and the flags set on the command line.
func (o *InputOptions) Input() (v1alpha1.SimulationInput, error) {
	in := v1alpha1.SimulationInput{}
	if o.InputFile != "" {
		data, err := os.ReadFile(o.InputFile)
		if err != nil {
			return in, fmt.Errorf("failed to read input file %s: %w", o.InputFile, err)
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("failed to parse input file %s: %w", o.InputFile, err)
		}
	}

	if o.flagSet == nil {
		return in, nil
	}

	changed := o.flagSet.Changed
	if changed("name") {
		in.ScenarioName = o.input.ScenarioName
	}
	if changed("volume") {
		in.MonthlyInvoiceVolume = o.input.MonthlyInvoiceVolume
	}
	if changed("staff") {
		in.NumApStaff = o.input.NumApStaff
	}
	if changed("hours-per-invoice") {
		in.AvgHoursPerInvoice = o.input.AvgHoursPerInvoice
	}
	if changed("wage") {
		in.HourlyWage = o.input.HourlyWage
	}
	if changed("error-rate") {
		in.ErrorRateManual = o.input.ErrorRateManual
	}
	if changed("error-cost") {
		in.ErrorCost = o.input.ErrorCost
	}
	if changed("horizon") {
		in.TimeHorizonMonths = o.input.TimeHorizonMonths
	}
	if changed("implementation-cost") {
		in.OneTimeImplementationCost = o.input.OneTimeImplementationCost
	}
	if changed("automated-cost") {
		v, err := o.flagSet.GetFloat64("automated-cost")
		if err != nil {
			return in, err
		}
		in.AutomatedCostPerInvoice = &v
	}

	return in, nil
}
