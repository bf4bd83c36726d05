package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ypbank/txfile/pkg/codec"
	"github.com/ypbank/txfile/pkg/record"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a transaction file between formats",
	Long: `Convert a transaction file from one format to another.

Reads from --input (or stdin) and writes to --output (or stdout).

Example:
  txfile convert --input txs.csv --input-format csv --output-format binary --output txs.bin`,
	Run: func(cmd *cobra.Command, args []string) {
		inputPath, _ := cmd.Flags().GetString("input")
		outputPath, _ := cmd.Flags().GetString("output")
		inputFormat, _ := cmd.Flags().GetString("input-format")
		outputFormat, _ := cmd.Flags().GetString("output-format")

		from, err := record.ParseFormat(inputFormat)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}
		to, err := record.ParseFormat(outputFormat)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		in := io.Reader(os.Stdin)
		if inputPath != "" {
			f, err := os.Open(inputPath)
			if err != nil {
				cmd.Printf("Error opening input: %v\n", err)
				return
			}
			defer f.Close()
			in = f
		}

		out := io.Writer(os.Stdout)
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				cmd.Printf("Error creating output: %v\n", err)
				return
			}
			defer f.Close()
			out = f
		}

		if err := runConvert(in, from, to, out); err != nil {
			cmd.Printf("Error: %v\n", err)
		}
	},
}

// runConvert decodes every record from in and re-encodes it to out.
// Nothing is written when decoding fails partway.
func runConvert(in io.Reader, from, to record.Format, out io.Writer) error {
	records, err := codec.ReadAll(in, from)
	if err != nil {
		return fmt.Errorf("reading %s input: %w", from, err)
	}
	if err := codec.WriteAll(out, to, records); err != nil {
		return fmt.Errorf("writing %s output: %w", to, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("input", "i", "", "Input file (defaults to stdin)")
	convertCmd.Flags().StringP("output", "o", "", "Output file (defaults to stdout)")
	convertCmd.Flags().String("input-format", "", "Input format: csv, txt or binary (required)")
	convertCmd.Flags().String("output-format", "", "Output format: csv, txt or binary (required)")
	if err := convertCmd.MarkFlagRequired("input-format"); err != nil {
		panic(err)
	}
	if err := convertCmd.MarkFlagRequired("output-format"); err != nil {
		panic(err)
	}
}
