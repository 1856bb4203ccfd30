package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/adnanxsalim/tool-vault/pkg/core"
	"github.com/adnanxsalim/tool-vault/pkg/history"
	"github.com/adnanxsalim/tool-vault/pkg/logging"
	"github.com/fatih/color"
	"github.com/howeyc/gopass"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vault",
	Short: "vault is a personal backup and restore tool with versioning",
	Long: `vault copies a source directory tree into a local archive under a (name, version)
key and restores it later. Every version is a full independent copy, with
optional compression and per-file encryption, a metadata sidecar, an audit
trail and manifest-level diffs between versions.
`,
}

var config *Config

// patched over during tests
var logFatalln = log.Fatalln
var osExit = os.Exit

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addConfigFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addStoreFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("loglevel", logging.LevelInfo)
	if cfg, _ := rootCmd.PersistentFlags().GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else if cfg := os.Getenv("VAULT_CONFIG"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.vault")
		viper.SetConfigName("vault")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}

// newStore assembles the snapshot store with its interactive collaborators.
func newStore() (*core.Store, error) {
	logger, err := logging.New(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	s := core.New(config.Store,
		core.WithLogger(logger),
		core.WithHistory(history.NewGit(config.Store, logger)),
		core.WithPassphrase(promptPassphrase),
		core.WithConfirm(promptConfirm),
	)
	if err := s.EnsureRoot(); err != nil {
		return nil, fmt.Errorf("ensuring store root %q: %w", config.Store, err)
	}
	return s, nil
}

func promptPassphrase(confirm bool) (string, error) {
	pass, err := gopass.GetPasswdPrompt("Enter passphrase: ", false, os.Stdin, os.Stderr)
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := gopass.GetPasswdPrompt("Confirm passphrase: ", false, os.Stdin, os.Stderr)
		if err != nil {
			return "", err
		}
		if string(pass) != string(again) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return string(pass), nil
}

func promptConfirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

var (
	infoln = color.New(color.FgGreen).PrintlnFunc()
	warnln = color.New(color.FgYellow).PrintlnFunc()
)
