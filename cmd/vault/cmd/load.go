package cmd

import (
	"fmt"

	"github.com/adnanxsalim/tool-vault/pkg/core"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <destination> <name>",
	Short: "Restore a saved snapshot into a directory",
	Long: `Load merge-copies the stored version into the destination: missing
directories are created, same-named entries are overwritten and unrelated
existing files are left untouched.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		destination, name := args[0], args[1]

		var opts []core.LoadOption
		if params.decrypt {
			opts = append(opts, core.LoadWithDecryption())
		}
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		if err := store.Load(destination, name, params.version, opts...); err != nil {
			logFatalln(err)
		}
		infoln(fmt.Sprintf("[+] Vault %s@%s loaded into %s.", name, params.version, destination))
	},
}

func init() {
	addVersionFlag(loadCmd)
	addDecryptFlag(loadCmd)
	rootCmd.AddCommand(loadCmd)
}
