package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GetOptions struct {
	GlobalOptions

	Output     string
	Name       string
	Limit      int
	Offset     int
	Profitable bool
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVar(&o.Name, "name", o.Name, "Only list scenarios whose name contains this text")
	fs.IntVar(&o.Limit, "limit", o.Limit, "Maximum number of scenarios to list")
	fs.IntVar(&o.Offset, "offset", o.Offset, "Number of scenarios to skip")
	fs.BoolVar(&o.Profitable, "profitable", o.Profitable, "Only list scenarios with positive monthly savings")
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	if _, _, err := parseAndValidateKindId(args[0]); err != nil {
		return err
	}

	if o.Limit < 0 || o.Offset < 0 {
		return fmt.Errorf("limit and offset must not be negative")
	}

	return validateOutput(o.Output)
}

func (o *GetOptions) Run(ctx context.Context, out io.Writer, args []string) error {
	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	c := o.Client()
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)

	if id != nil {
		scenario, err := c.GetScenario(ctx, *id)
		if err != nil {
			return fmt.Errorf("reading %s/%s: %w", kind, id, err)
		}
		if done, err := printStructured(out, scenario, o.Output); done {
			return err
		}
		printResultTable(w, scenario.SimulationResult)
		return w.Flush()
	}

	list, err := c.ListScenarios(ctx, client.ListOptions{
		Name:           o.Name,
		Limit:          o.Limit,
		Offset:         o.Offset,
		ProfitableOnly: o.Profitable,
	})
	if err != nil {
		return fmt.Errorf("listing %s: %w", plural(kind), err)
	}
	if done, err := printStructured(out, list, o.Output); done {
		return err
	}
	printScenariosTable(w, list...)
	return w.Flush()
}

func summary(s v1alpha1.Scenario) v1alpha1.ScenarioSummary {
	return v1alpha1.ScenarioSummary{
		Id:             s.Id,
		ScenarioName:   s.ScenarioName,
		MonthlySavings: s.MonthlySavings,
		RoiPercentage:  s.RoiPercentage,
		CreatedAt:      s.CreatedAt,
	}
}

func printScenariosTable(w *tabwriter.Writer, scenarios ...v1alpha1.ScenarioSummary) {
	fmt.Fprintln(w, "ID\tNAME\tMONTHLY SAVINGS\tROI\tCREATED")
	for _, s := range scenarios {
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\n", s.Id, s.ScenarioName, s.MonthlySavings,
			formatOptional(s.RoiPercentage, "%"), s.CreatedAt.Format(time.RFC3339))
	}
}
