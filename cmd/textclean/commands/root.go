// Package commands implements the CLI commands for textclean.
package commands

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/textclean/internal/logger"
)

// NewRootCommand builds the textclean command tree. Each call gets its own
// viper instance, so commands can be built and run repeatedly in one process.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "textclean",
		Short: "Normalize dirty scraped text into clean strings",
		Long: `Textclean cleans text harvested from web pages and product feeds.

It decodes HTML entities, strips tags, drops invisible characters,
normalizes spaces, dashes and quotes, collapses whitespace and can
lowercase, filter and truncate the result.

Examples:
  # Clean a single string
  textclean clean "Caf&eacute; <b>Noir</b>"

  # Clean every line of a file, one JSON object per line
  textclean clean --file names.txt --lines --format jsonl

  # Extract the digits of a price
  echo "Now only &pound;1,299.00!" | textclean clean --mode price`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			logger.Init(logger.Options{
				Debug:  v.GetBool("debug"),
				Quiet:  v.GetBool("quiet"),
				Output: cmd.ErrOrStderr(),
			})
			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("loaded config file", "path", used)
			}
			return nil
		},
	}

	// Global flags
	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.textclean.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")

	_ = v.BindPFlag("config", pf.Lookup("config"))
	_ = v.BindPFlag("debug", pf.Lookup("debug"))
	_ = v.BindPFlag("quiet", pf.Lookup("quiet"))

	root.AddCommand(
		newCleanCommand(v),
		newVersionCommand(),
	)

	return root
}

func initConfig(v *viper.Viper) error {
	explicit := v.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".textclean")
		v.SetConfigType("yaml")
	}

	// Environment variables, e.g. TEXTCLEAN_CLEANER_MAX_LENGTH
	v.SetEnvPrefix("TEXTCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
