package cmd

import (
	"fmt"
	"io"

	ldif "github.com/logicossoftware/go-ldif"
	"github.com/spf13/cobra"
)

var checkBrotli bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a file and report entry and warning counts",
	Long: `Parse an LDIF file end to end and report the number of entries and
advisory warnings. A malformed line stops the run with an error.

Example:
  ldif check people.ldif
  zcat people.ldif.gz | ldif check -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer in.Close()

		opts := []ldif.ReadOption{}
		if checkBrotli {
			opts = append(opts, ldif.WithReadCompression(ldif.CompBR))
		}
		warnings := 0
		opts = append(opts, ldif.WithWarningHandler(func(w ldif.Warning) {
			warnings++
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
		}))

		dec, err := ldif.NewDecoder(in, opts...)
		if err != nil {
			return err
		}
		entries := 0
		for {
			_, err := dec.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("after %d entries: %w", entries, err)
			}
			entries++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %d warnings\n", entries, warnings)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkBrotli, "brotli", false, "input is brotli-compressed (cannot be auto-detected)")
	rootCmd.AddCommand(checkCmd)
}
