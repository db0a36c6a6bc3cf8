package main

import (
	"fmt"
	"os"

	"github.com/hyun7520/RAG-Complaint-2nd/cmd/cli/complaints"
	"github.com/hyun7520/RAG-Complaint-2nd/cmd/cli/session"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// Missing .env is fine; the environment may be set by the shell.
	_ = godotenv.Load()

	rootCmd.AddGroup(session.Group)
	rootCmd.AddCommand(session.Login)
	rootCmd.AddCommand(session.Logout)
	rootCmd.AddCommand(session.Whoami)
	rootCmd.AddGroup(complaints.Group)
	rootCmd.AddCommand(complaints.List)
	rootCmd.AddCommand(complaints.Show)
}

var rootCmd = &cobra.Command{
	Use:  "minwonctl",
	Long: `Command line utilities for the complaint management front-end`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
