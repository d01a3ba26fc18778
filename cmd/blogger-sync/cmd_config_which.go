/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configWhichCmd represents the config which command
var configWhichCmd = &cobra.Command{
	Use:   "which",
	Short: "Tell me the resolved config path",
	Long: `
Output the filename that's being used to store your config.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config path: %s\n", Config)
	},
}

func init() {
	configCmd.AddCommand(configWhichCmd)
}
