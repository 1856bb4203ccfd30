package cmd

import (
	"fmt"

	"github.com/adnanxsalim/tool-vault/pkg/core"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <source> <name>",
	Short: "Save a snapshot of a directory tree",
	Long: `Save copies the source tree into the store under <name> and the given
version label. A .vaultignore file in the source root excludes matching
paths. Saving over an existing version replaces it entirely.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		source, name := args[0], args[1]

		kind, err := model.ParseCompression(params.compression)
		if err != nil {
			logFatalln(err)
		}
		var opts []core.SaveOption
		if kind != model.CompressionNone {
			opts = append(opts, core.SaveWithCompression(kind))
		}
		if params.encrypt {
			opts = append(opts, core.SaveWithEncryption())
		}
		if params.readonly {
			opts = append(opts, core.SaveReadOnly())
		}
		if len(params.tags) > 0 {
			opts = append(opts, core.SaveWithTags(params.tags...))
		}
		if params.dryRun {
			opts = append(opts, core.SaveDryRun())
		}

		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		manifest, err := store.Save(source, name, params.version, opts...)
		if err != nil {
			logFatalln(err)
		}
		if params.dryRun {
			warnln("[Dry Run] Files to be saved:")
			for _, e := range manifest {
				if e.IsDir {
					fmt.Println(e.Path + "/")
					continue
				}
				fmt.Println(e.Path)
			}
			return
		}
		infoln(fmt.Sprintf("[+] Vault %s@%s saved.", name, params.version))
	},
}

func init() {
	addVersionFlag(saveCmd)
	addCompressFlag(saveCmd)
	addEncryptFlag(saveCmd)
	addDryRunFlag(saveCmd)
	addReadonlyFlag(saveCmd)
	addTagsFlag(saveCmd)
	rootCmd.AddCommand(saveCmd)
}
