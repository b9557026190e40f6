package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type ExportOptions struct {
	GlobalOptions

	Format     string
	OutputFile string
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Format:        v1alpha1.ExportFormatXlsx,
	}
}

func NewCmdExport() *cobra.Command {
	o := DefaultExportOptions()
	cmd := &cobra.Command{
		Use:     "export ID",
		Short:   "Download a saved scenario as a spreadsheet",
		Example: "export 2f1c0e44-3c5e-4d4b-9f55-8d1d2f0a7c11 --format csv -O scenario.csv",
		Args:    cobra.ExactArgs(1),
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

func (o *ExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Format, "format", o.Format, "Export format. One of: (xlsx, csv).")
	fs.StringVarP(&o.OutputFile, "output-file", "O", o.OutputFile, "File to write. Defaults to scenario-ID.FORMAT")
}

func (o *ExportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if _, err := uuid.Parse(args[0]); err != nil {
		return fmt.Errorf("invalid ID: %w", err)
	}
	if !funk.ContainsString([]string{v1alpha1.ExportFormatXlsx, v1alpha1.ExportFormatCsv}, o.Format) {
		return fmt.Errorf("unsupported export format %q", o.Format)
	}
	return nil
}

func (o *ExportOptions) Run(ctx context.Context, out io.Writer, args []string) error {
	id := uuid.MustParse(args[0])

	content, err := o.Client().ExportScenario(ctx, id, o.Format)
	if err != nil {
		return fmt.Errorf("exporting scenario/%s: %w", id, err)
	}

	path := o.OutputFile
	if path == "" {
		path = fmt.Sprintf("scenario-%s.%s", id, o.Format)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, err = fmt.Fprintf(out, "scenario %s exported to %s\n", id, path)
	return err
}
