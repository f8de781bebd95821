package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	pagination "github.com/booscaaa/go-query-pagination"
)

var rootCmd = &cobra.Command{
	Use:   "qpag",
	Short: "Encode and decode list-query parameter models",
	Long: `qpag translates between JSON parameter models (page, limit, search,
sort and filter operators) and the query-string wire format used by APIs
speaking the query-pagination convention.

Flag defaults can also be set through QPAG_* environment variables,
e.g. QPAG_ARRAY_FORMAT=brackets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, reporting failures through the logger.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

var optionFlags = []string{"array-format", "separator", "no-encode-values", "keep-nulls", "keep-empty"}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	pf := rootCmd.PersistentFlags()
	pf.String("array-format", string(pagination.ArrayFormatRepeat),
		"array serialization: repeat, brackets, indices, comma or separator")
	pf.String("separator", ",", "joiner used with --array-format=separator")
	pf.Bool("no-encode-values", false, "disable percent-encoding of keys and values")
	pf.Bool("keep-nulls", false, "emit entries whose value is null")
	pf.Bool("keep-empty", false, "emit entries whose value is the empty string")

	viper.SetEnvPrefix("QPAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range optionFlags {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// encodeOptions resolves the encoding configuration from flags and QPAG_*
// environment variables.
func encodeOptions() (*pagination.Options, error) {
	format := pagination.ArrayFormat(viper.GetString("array-format"))
	if !format.Valid() {
		return nil, fmt.Errorf("unknown array format %q", format)
	}
	return &pagination.Options{
		EncodeValues:    !viper.GetBool("no-encode-values"),
		ArrayFormat:     format,
		ArraySeparator:  viper.GetString("separator"),
		SkipNulls:       !viper.GetBool("keep-nulls"),
		SkipEmptyString: !viper.GetBool("keep-empty"),
	}, nil
}
