package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ldflagsSoftwareVersion = "debug"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quarry version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quarry [%s]\n", ldflagsSoftwareVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
