package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/textclean/internal/output"
	"github.com/jmylchreest/textclean/internal/version"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()

			if short, _ := cmd.Flags().GetBool("short"); short {
				_, err := cmd.OutOrStdout().Write([]byte(info.Short() + "\n"))
				return err
			}

			formatStr, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			w, err := output.NewWriter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}
			if err := w.Write(info); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	cmd.Flags().Bool("short", false, "print only the version number")
	cmd.Flags().StringP("format", "o", "text", "output format: text, json, yaml")

	return cmd
}
