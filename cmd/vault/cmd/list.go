package cmd

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved vaults and their versions",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		refs, err := store.List()
		if err != nil {
			logFatalln(err)
		}
		if len(refs) == 0 {
			warnln("[!] No vaults found.")
			return
		}
		table := uitable.New()
		table.AddRow("VAULT", "VERSION", "SIZE")
		for _, ref := range refs {
			size, serr := store.VersionSize(ref.Vault, ref.Version)
			if serr != nil {
				logFatalln(serr)
			}
			table.AddRow(ref.Vault, ref.Version, units.HumanSize(float64(size)))
		}
		fmt.Println(table)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
