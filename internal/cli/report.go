package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ReportOptions struct {
	GlobalOptions
	InputOptions

	Email string
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Request the ROI report of an input for an email address",
		Args:  cobra.NoArgs,
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
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVar(&o.Email, "email", o.Email, "Email address the report is sent to")
}

func (o *ReportOptions) Run(ctx context.Context, out io.Writer) error {
	in, err := o.Input()
	if err != nil {
		return err
	}

	if err := o.Client().RequestReport(ctx, v1alpha1.ReportRequest{SimulationInput: in, Email: o.Email}); err != nil {
		return fmt.Errorf("requesting report: %w", err)
	}

	_, err = fmt.Fprintf(out, "report requested for %s\n", o.Email)
	return err
}
