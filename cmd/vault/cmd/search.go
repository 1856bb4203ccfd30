package cmd

import (
	"fmt"

	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search vaults by name or metadata",
	Long: `Search scans every version's metadata record and reports versions whose
name or serialized metadata contains the term (case-sensitive).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		err = store.Search(args[0], func(ref model.VersionRef) error {
			fmt.Printf("Found: %s\n", ref.Subject())
			return nil
		})
		if err != nil {
			logFatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
