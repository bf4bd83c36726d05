package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ypbank/txfile/pkg/record"
	"github.com/ypbank/txfile/pkg/storage"
)

// archiveCmd groups the local transaction archive commands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local transaction archive",
	Long: `Manage the local transaction archive.

The archive stores transactions keyed by id in a local database under
--archive-dir, so files can be imported once and queried or re-exported
in any format later.`,
}

var archiveImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a transaction file into the archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := formatFlag(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		in, err := os.Open(args[0])
		if err != nil {
			cmd.Printf("Error opening %s: %v\n", args[0], err)
			return
		}
		defer in.Close()

		withArchive(cmd, func(archive *storage.Archive) {
			count, batchID, err := archive.ImportFrom(in, f)
			if err != nil {
				cmd.Printf("Error importing: %v\n", err)
				return
			}
			cmd.Printf("Imported %d transactions (batch %s)\n", count, batchID)
		})
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print one archived transaction by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			cmd.Printf("Error: invalid transaction id %q\n", args[0])
			return
		}

		withArchive(cmd, func(archive *storage.Archive) {
			rec, err := archive.Get(id)
			if err != nil {
				cmd.Printf("Error: %v\n", err)
				return
			}
			cmd.Printf("%+v\n", *rec)
		})
	},
}

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every archived transaction to stdout",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := formatFlag(cmd)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		withArchive(cmd, func(archive *storage.Archive) {
			if err := archive.ExportTo(os.Stdout, f); err != nil {
				cmd.Printf("Error exporting: %v\n", err)
			}
		})
	},
}

// formatFlag resolves the --format flag of an archive subcommand.
func formatFlag(cmd *cobra.Command) (record.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	return record.ParseFormat(name)
}

// withArchive opens the archive named by --archive-dir, runs fn and
// closes it again.
func withArchive(cmd *cobra.Command, fn func(*storage.Archive)) {
	dir, _ := cmd.Flags().GetString("archive-dir")
	archive, err := storage.Open(dir)
	if err != nil {
		cmd.Printf("Error opening archive: %v\n", err)
		return
	}
	defer func() {
		if err := archive.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing archive: %v\n", err)
		}
	}()
	fn(archive)
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveImportCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	archiveCmd.PersistentFlags().String("archive-dir", "./archive", "Archive directory")
	archiveImportCmd.Flags().String("format", "csv", "Format of the imported file: csv, txt or binary")
	archiveExportCmd.Flags().String("format", "csv", "Export format: csv, txt or binary")
}
