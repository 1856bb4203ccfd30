package cmd

import (
	"fmt"

	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"github.com/adnanxsalim/tool-vault/pkg/errors"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a vault, or a single version with --version",
	Long: `Delete irreversibly removes a whole vault, or one version of it when
--version is given. The operation asks for confirmation first; declining
leaves the store untouched.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		subject := name
		if cmd.Flags().Changed("version") {
			subject = name + "@" + params.version
			err = store.DeleteVersion(name, params.version)
		} else {
			err = store.Delete(name)
		}
		if errors.Is(err, status.ErrConfirmationDeclined) {
			warnln("[!] Delete aborted.")
			return
		}
		if err != nil {
			logFatalln(err)
		}
		infoln(fmt.Sprintf("[+] Vault %s deleted.", subject))
	},
}

func init() {
	addVersionFlag(deleteCmd)
	rootCmd.AddCommand(deleteCmd)
}
