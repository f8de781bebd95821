package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pagination "github.com/booscaaa/go-query-pagination"
)

var decodeCompact bool

var decodeCmd = &cobra.Command{
	Use:   "decode <query-string-or-url>",
	Short: "Decode a query string into a JSON parameter model",
	Long: `Decode a query string (or a full URL carrying one) back into a JSON
parameter model.

Examples:
  qpag decode 'page=2&sort=name&sort=-created_at'
  qpag decode 'https://api.example.com/users?page=2&eq[active]=true'
  qpag decode 'limit=10' --compact`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeCompact, "compact", false, "print the model on one line")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	raw := args[0]
	if strings.Contains(raw, "://") {
		_, query, found := strings.Cut(raw, "?")
		if !found {
			return fmt.Errorf("URL %q carries no query string", raw)
		}
		raw = query
	}

	params, err := pagination.DecodeQueryString(raw)
	if err != nil {
		return err
	}

	var data []byte
	if decodeCompact {
		data, err = json.Marshal(params.ToMap())
	} else {
		data, err = json.MarshalIndent(params.ToMap(), "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
