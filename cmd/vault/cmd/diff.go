package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <name> <v1> <v2>",
	Short: "Show the file-manifest diff between two versions",
	Long: `Diff compares which file paths the two versions contain, as a unified
diff over the sorted manifests. File contents are not compared.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		lines, err := store.Diff(args[0], args[1], args[2])
		if err != nil {
			logFatalln(err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
