package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pagination "github.com/booscaaa/go-query-pagination"
)

var encodeBaseURL string

var encodeCmd = &cobra.Command{
	Use:   "encode [file.json]",
	Short: "Encode a JSON parameter model into a query string",
	Long: `Encode a JSON parameter model into a query string.

The model is read from the given file, or from stdin when no file is given.

Examples:
  qpag encode params.json
  echo '{"page":1,"limit":10}' | qpag encode
  qpag encode params.json --base-url https://api.example.com/users
  qpag encode params.json --array-format comma`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeBaseURL, "base-url", "",
		"append the encoded query string to this URL")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read parameter model: %w", err)
	}

	params, err := pagination.ParseJSON(data)
	if err != nil {
		return err
	}
	opts, err := encodeOptions()
	if err != nil {
		return err
	}

	var out string
	if encodeBaseURL != "" {
		out, err = pagination.EncodeURL(encodeBaseURL, params, opts)
	} else {
		out, err = pagination.EncodeQueryString(params, opts)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
