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

type SaveOptions struct {
	GlobalOptions
	InputOptions

	Output string
}

func DefaultSaveOptions() *SaveOptions {
	return &SaveOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdSave() *cobra.Command {
	o := DefaultSaveOptions()
	cmd := &cobra.Command{
		Use:     "save",
		Short:   "Compute and save a scenario",
		Example: "save -f scenario.yaml --name \"Q3 proposal\"",
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

func (o *SaveOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *SaveOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *SaveOptions) Run(ctx context.Context, out io.Writer) error {
	in, err := o.Input()
	if err != nil {
		return err
	}

	scenario, err := o.Client().CreateScenario(ctx, v1alpha1.ScenarioCreate{SimulationInput: in})
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}

	if done, err := printStructured(out, scenario, o.Output); done {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	printScenariosTable(w, summary(*scenario))
	return w.Flush()
}
