package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show metadata for every version of a vault",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		descs, err := store.Info(args[0])
		if err != nil {
			logFatalln(err)
		}
		table := uitable.New()
		table.AddRow("VERSION", "SAVED", "SOURCE", "TAGS", "COMPRESSION", "ENCRYPTED", "READONLY")
		for _, d := range descs {
			compression := string(d.Compression)
			if compression == "" {
				compression = "none"
			}
			saved := ""
			if !d.Timestamp.IsZero() {
				saved = d.Timestamp.Format(time.RFC3339)
			}
			table.AddRow(d.Version, saved, d.Source, strings.Join(d.Tags, ","), compression, d.Encrypted, d.ReadOnly)
		}
		fmt.Println(table)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
