package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Show access log entries for a vault",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := newStore()
		if err != nil {
			logFatalln(err)
		}
		lines, err := store.AccessLog(args[0])
		if err != nil {
			logFatalln(err)
		}
		if len(lines) == 0 {
			warnln("[!] No logs found.")
			return
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
