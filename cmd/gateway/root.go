package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// options are the persistent flags shared by the client commands.
type options struct {
	backendURL  string
	profile     string
	credentials string
	output      string
}

func execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gateway",
		Short:         "Residential community admin gateway",
		Long:          "Runs the admin gateway service, or acts as a command-line client of the community backend.",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != "text" && opts.output != "json" {
				return fmt.Errorf("unsupported output format %q: use 'text' or 'json'", opts.output)
			}
			if !cmd.Flags().Changed("backend") {
				if v := os.Getenv("BACKEND_URL"); v != "" {
					opts.backendURL = v
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.backendURL, "backend", "http://localhost:8080/api", "Backend base URL (env BACKEND_URL)")
	root.PersistentFlags().StringVarP(&opts.profile, "profile", "p", "default", "Credential profile to use")
	root.PersistentFlags().StringVar(&opts.credentials, "credentials", "", "Credentials file (default: user config dir)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json)")

	root.AddCommand(
		newServeCmd(),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoAmICmd(opts),
		newNavCmd(opts),
		newRoleCmd(opts),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
