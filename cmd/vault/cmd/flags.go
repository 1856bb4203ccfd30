package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultVersionLabel = "v1"

type flagsT struct {
	version     string
	compression string
	encrypt     bool
	decrypt     bool
	dryRun      bool
	readonly    bool
	tags        []string
}

var params flagsT

func addConfigFlag(cmd *cobra.Command) string {
	const flag = "config"
	cmd.PersistentFlags().String(flag, "", "Set the config file to use")
	return flag
}

func addStoreFlag(cmd *cobra.Command) string {
	const flag = "store"
	cmd.PersistentFlags().String(flag, "", "Set the store root directory (default $HOME/"+defaultStoreDir+")")
	_ = viper.BindPFlag(flag, cmd.PersistentFlags().Lookup(flag))
	return flag
}

func addLogLevelFlag(cmd *cobra.Command) string {
	const flag = "loglevel"
	cmd.PersistentFlags().String(flag, "", "Set the logging level (debug, info, warn, error, none)")
	_ = viper.BindPFlag(flag, cmd.PersistentFlags().Lookup(flag))
	return flag
}

func addVersionFlag(cmd *cobra.Command) string {
	const flag = "version"
	cmd.Flags().StringVar(&params.version, flag, defaultVersionLabel, "Version label of the snapshot")
	return flag
}

func addCompressFlag(cmd *cobra.Command) string {
	const flag = "compress"
	cmd.Flags().StringVar(&params.compression, flag, "", "Compress the saved snapshot (zip or tar.gz)")
	return flag
}

func addEncryptFlag(cmd *cobra.Command) string {
	const flag = "encrypt"
	cmd.Flags().BoolVar(&params.encrypt, flag, false, "Encrypt stored files with a passphrase")
	return flag
}

func addDecryptFlag(cmd *cobra.Command) string {
	const flag = "decrypt"
	cmd.Flags().BoolVar(&params.decrypt, flag, false, "Decrypt files when loading")
	return flag
}

func addDryRunFlag(cmd *cobra.Command) string {
	const flag = "dry-run"
	cmd.Flags().BoolVar(&params.dryRun, flag, false, "Show what would be saved without side effects")
	return flag
}

func addReadonlyFlag(cmd *cobra.Command) string {
	const flag = "readonly"
	cmd.Flags().BoolVar(&params.readonly, flag, false, "Flag the version against future overwrites")
	return flag
}

func addTagsFlag(cmd *cobra.Command) string {
	const flag = "tags"
	cmd.Flags().StringSliceVar(&params.tags, flag, nil, "Attach tags to the version metadata")
	return flag
}
