package main

import (
	"github.com/spf13/cobra"

	"github.com/codegangsta/mimic/internal/config"
)

var (
	cfgFile  string
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "mimic",
	Short: "Telegram bot answering keyword commands",
	Long: `mimic answers chat messages of the form "keyword < arg < arg".

Text commands transform or compute something from the arguments, file
commands work on a document sent with the command as its caption.
Send "help < list" to the bot to see every command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFiles...)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default: .env)")
}
