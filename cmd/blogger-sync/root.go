/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// Command to run to retrieve the Blogger OAuth bearer token
	AuthTokenCmd []string

	LocalStore string
	BlogID     string
	APIBaseURL string
	Workers    int

	HighlightStyle string

	CdnEndpoint  string
	CdnRegion    string
	CdnBucket    string
	CdnAccessKey string
	CdnPublicURL string
	CdnFolder    string

	// Command to run to retrieve the object store secret key
	CdnSecretKeyCmd []string

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "blogger-sync",
	Short: "Publish locally-authored blog posts to Blogger",
	Long: `
Author your posts as Markdown files with YAML frontmatter, keep them in git, and let this tool
reconcile them against Blogger and your image CDN.  Re-running it is always safe: unchanged posts
cost zero remote calls.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("blogger-sync: failed to initialise config: %w", err)
		}

		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/blogger-sync.yaml, respects BLOGGER_SYNC_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringSliceVar(&AuthTokenCmd, "auth-token-cmd", []string{}, "shell command to retrieve Blogger OAuth token")
	rootCmd.PersistentFlags().StringVar(&LocalStore, "store", "", "directory holding your post directories")
	rootCmd.PersistentFlags().StringVar(&BlogID, "blog-id", "", "numeric ID of the Blogger blog to publish to")
	rootCmd.PersistentFlags().StringVar(&APIBaseURL, "api-base-url", "", "override the Blogger REST API base URL")
	rootCmd.PersistentFlags().IntVar(&Workers, "workers", 4, "how many posts to process concurrently")
	rootCmd.PersistentFlags().StringVar(&HighlightStyle, "highlight-style", "", "chroma style name for code block highlighting")
	rootCmd.PersistentFlags().StringVar(&CdnEndpoint, "cdn-endpoint", "", "S3-compatible endpoint for image uploads (empty for AWS S3)")
	rootCmd.PersistentFlags().StringVar(&CdnRegion, "cdn-region", "", "object store region")
	rootCmd.PersistentFlags().StringVar(&CdnBucket, "cdn-bucket", "", "bucket to upload post images to")
	rootCmd.PersistentFlags().StringVar(&CdnAccessKey, "cdn-access-key", "", "object store access key ID")
	rootCmd.PersistentFlags().StringSliceVar(&CdnSecretKeyCmd, "cdn-secret-key-cmd", []string{}, "shell command to retrieve the object store secret key")
	rootCmd.PersistentFlags().StringVar(&CdnPublicURL, "cdn-public-url", "", "public base URL images are served from")
	rootCmd.PersistentFlags().StringVar(&CdnFolder, "cdn-folder", "", "key prefix for uploaded images")
}

func initializeConfig(cmd *cobra.Command) error {
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("BLOGGER_SYNC_CONFIG")
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/blogger-sync.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("blogger-sync: unable to expand homedir: %w", err)
	}
	Config = config

	// Use config file from the flag.
	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Couldn't read config file %s, does it exist?  Override with --config.\n", Config)
		return fmt.Errorf("blogger-sync: specified config file does not exist: %w", err)
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("blogger-sync: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("blogger-sync: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("blogger-sync: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	WithVCR *bool `yaml:"with-vcr"`
	All     *bool `yaml:"all"`

	StorePath    string   `yaml:"store"`
	BlogID       string   `yaml:"blog-id"`
	APIBaseURL   string   `yaml:"api-base-url"`
	AuthTokenCmd []string `yaml:"auth-token-cmd"`
	Workers      *int     `yaml:"workers"`

	HighlightStyle string `yaml:"highlight-style"`

	CdnEndpoint     string   `yaml:"cdn-endpoint"`
	CdnRegion       string   `yaml:"cdn-region"`
	CdnBucket       string   `yaml:"cdn-bucket"`
	CdnAccessKey    string   `yaml:"cdn-access-key"`
	CdnSecretKeyCmd []string `yaml:"cdn-secret-key-cmd"`
	CdnPublicURL    string   `yaml:"cdn-public-url"`
	CdnFolder       string   `yaml:"cdn-folder"`
}

// Bind each cobra flag to its associated config file key.  Flags given on
// the command line win; the YAML value only fills in flags left at their
// default.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("blogger-sync: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// hmm... the flag is unknown.  but that can legitimately happen if you're running
			// e.g. `status` which has no `all` flag but your YAML file does define it...
			continue
		}
		if !cmd.Flags().Changed(key) {
			switch field.Kind() {
			case reflect.Ptr:
				// pointers so that "absent from YAML" and "explicitly false/zero" stay distinct
				switch p := field.Value().(type) {
				case *bool:
					if p != nil {
						cmd.Flags().Set(key, fmt.Sprintf("%v", *p))
					}
				case *int:
					if p != nil {
						cmd.Flags().Set(key, fmt.Sprintf("%d", *p))
					}
				default:
					return fmt.Errorf("blogger-sync: found unrecognised field: %+v", field)
				}

			case reflect.String:
				s, ok := field.Value().(string)
				if !ok {
					return fmt.Errorf("blogger-sync: found unrecognised field: %+v", field)
				}
				if s != "" {
					cmd.Flags().Set(key, s)
				}

			case reflect.Slice:
				ss, ok := field.Value().([]string)
				if !ok {
					return fmt.Errorf("blogger-sync: found unrecognised field: %+v", field)
				}
				for _, s := range ss {
					// yes, repeatedly calling Set() appends to the slice...
					cmd.Flags().Set(key, s)
				}

			default:
				return fmt.Errorf("blogger-sync: found unrecognised field: %+v", field)
			}
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("blogger-sync: execution error: %w", err)
	}

	return nil
}
