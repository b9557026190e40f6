package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type SimulateOptions struct {
	GlobalOptions
	InputOptions

	Output string
}

func DefaultSimulateOptions() *SimulateOptions {
	return &SimulateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdSimulate() *cobra.Command {
	o := DefaultSimulateOptions()
	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Compute the ROI of an input without saving it",
		Example: "simulate --volume 2000 --staff 3 --hours-per-invoice 0.17 --wage 30 --error-rate 0.5 --error-cost 100 --horizon 36 --implementation-cost 50000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *SimulateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *SimulateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *SimulateOptions) Run(ctx context.Context, out io.Writer) error {
	in, err := o.Input()
	if err != nil {
		return err
	}

	res, err := o.Client().Simulate(ctx, in)
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	if done, err := printStructured(out, res, o.Output); done {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	printResultTable(w, *res)
	return w.Flush()
}

func printResultTable(w *tabwriter.Writer, res v1alpha1.SimulationResult) {
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "monthly savings\t%g\n", res.MonthlySavings)
	fmt.Fprintf(w, "payback\t%s\n", formatOptional(res.PaybackMonths, " months"))
	fmt.Fprintf(w, "roi\t%s\n", formatOptional(res.RoiPercentage, "%"))
	fmt.Fprintf(w, "total manual cost\t%g\n", res.TotalManualCost)
	fmt.Fprintf(w, "automated cost\t%g\n", res.AutomatedCost)
	fmt.Fprintf(w, "total benefit\t%g\n", res.TotalBenefit)
	fmt.Fprintf(w, "net benefit\t%g\n", res.NetBenefit)
}
