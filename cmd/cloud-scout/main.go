// Copyright (C) ConfigHub, Inc.
// SPDX-License-Identifier: MIT

// Command cloud-scout is a terminal dashboard for cloud resources across
// AWS, GCP and Azure: one place to see what is running, what it costs, and
// to start, stop or terminate it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// BuildTag is set during build
	BuildTag = "dev"
	// BuildDate is set during build
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cloud-scout",
	Short: "Terminal dashboard for your cloud resources",
	Long: `cloud-scout - terminal dashboard for your cloud resources

cloud-scout unifies visibility over AWS, GCP and Azure in one TUI:

  - Listing compute, database, storage, load balancer and DNS resources
  - Filtering and navigating the inventory across providers
  - Lifecycle actions (start, stop, restart, terminate) with confirmation
  - Monthly cost estimates and Cost Explorer spend breakdowns

Configuration lives in ~/.cloud-scout/config.yaml.

Environment Variables:
  CLOUD_SCOUT_AWS_PROFILE    AWS profile to use
  CLOUD_SCOUT_AWS_REGION     AWS region (default: us-east-1)
  CLOUD_SCOUT_CACHE_ENABLED  Enable the local resource cache (default: true)
  CLOUD_SCOUT_LOG            Log level: debug, info, warn, error
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cloud-scout version %s (built %s)\n", BuildTag, BuildDate)
		},
	})

	// Add completion command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for cloud-scout.

Bash:
  $ source <(cloud-scout completion bash)
  # Or add to ~/.bashrc:
  $ cloud-scout completion bash >> ~/.bashrc

Zsh:
  $ source <(cloud-scout completion zsh)
  # Or install to fpath:
  $ cloud-scout completion zsh > "${fpath[1]}/_cloud-scout"

Fish:
  $ cloud-scout completion fish | source
  # Or install:
  $ cloud-scout completion fish > ~/.config/fish/completions/cloud-scout.fish

PowerShell:
  PS> cloud-scout completion powershell | Out-String | Invoke-Expression
`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	})
}
