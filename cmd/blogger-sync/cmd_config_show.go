/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Run: func(cmd *cobra.Command, args []string) {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config file: %s\n", Config)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Println()
		fmt.Printf("  Parsed YAML:\n%#v\n", ParsedConfig)
		fmt.Println()
		fmt.Printf("  Store: %s\n", LocalStore)
		fmt.Printf("  BlogID: %s\n", BlogID)
		fmt.Printf("  APIBaseURL: %s\n", APIBaseURL)
		fmt.Printf("  AuthTokenCmd: %v\n", AuthTokenCmd)
		fmt.Printf("  Workers: %d\n", Workers)
		fmt.Printf("  HighlightStyle: %s\n", HighlightStyle)
		fmt.Println()
		fmt.Printf("  CdnEndpoint: %s\n", CdnEndpoint)
		fmt.Printf("  CdnRegion: %s\n", CdnRegion)
		fmt.Printf("  CdnBucket: %s\n", CdnBucket)
		fmt.Printf("  CdnAccessKey: %s\n", CdnAccessKey)
		fmt.Printf("  CdnSecretKeyCmd: %v\n", CdnSecretKeyCmd)
		fmt.Printf("  CdnPublicURL: %s\n", CdnPublicURL)
		fmt.Printf("  CdnFolder: %s\n", CdnFolder)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
