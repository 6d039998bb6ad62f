// Package cli implements the sasce command-line client. It drives the same
// API gateway and session store as the web surface, aimed at operators who
// script against the system.
package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
	"sasce-admin/internal/services"
	"sasce-admin/internal/session"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]any{
				"error": err.Error(),
			}
			if status, ok := httpStatus(err); ok {
				errObj["http_status"] = status
			}
			_ = printJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// httpStatus recovers the HTTP status behind a gateway error, including the
// typed domain errors the gateway maps 403/404/409 onto.
func httpStatus(err error) (int, bool) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	var denied *domain.AccessDeniedError
	if errors.As(err, &denied) {
		return http.StatusForbidden, true
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, true
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, true
	}
	return 0, false
}

// app carries the resolved configuration and the connected service layer.
// Commands receive it after PersistentPreRunE has run.
type app struct {
	host    string
	output  string
	profile string

	store  *session.Store
	bundle *services.Bundle
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "sasce",
		Short:         "Cliente administrativo GHP-SASCE",
		Long:          "Command-line client for the GHP-SASCE classroom assignment API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional.
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}

			if a.profile == "" {
				a.profile = cfg.CurrentProfile
			}
			if a.profile == "" {
				a.profile = "default"
			}
			p := cfg.Profiles[a.profile]

			a.host = resolveSetting(cmd.Flags().Changed("host"), a.host, os.Getenv("SASCE_HOST"), p.Host)
			a.output = resolveSetting(cmd.Flags().Changed("output"), a.output, os.Getenv("SASCE_OUTPUT"), p.Output)
			if err := validateOutputFormat(a.output); err != nil {
				return err
			}

			return a.connect()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.host, "host", "http://localhost:3000/api", "API host URL")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&a.profile, "profile", "p", "", "Config profile to use")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuthCmd(a))
	rootCmd.AddCommand(newUsuariosCmd(a))
	rootCmd.AddCommand(newGruposCmd(a))
	rootCmd.AddCommand(newProfesoresCmd(a))
	rootCmd.AddCommand(newSalonesCmd(a))
	rootCmd.AddCommand(newDisponibilidadCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// resolveSetting applies the flag > env > profile > default precedence.
// current holds the flag's value, which is the default when the flag was
// not given on the command line.
func resolveSetting(flagChanged bool, current, env, profile string) string {
	if flagChanged {
		return current
	}
	if env != "" {
		return env
	}
	if profile != "" {
		return profile
	}
	return current
}

// connect wires the gateway client, the service bundle, and the session
// store over the resolved host. The store is both the token source for
// outgoing requests and the teardown target when the server returns a 401.
func (a *app) connect() error {
	client := apiclient.NewClient(a.host, nil)
	a.bundle = services.NewBundle(client)
	a.store = session.NewStore(a.bundle.Auth, session.NewFileStorage(SessionPath(a.profile)))
	client.Auth = a.store
	return a.store.Initialize()
}

// requireSession fails fast when no session is stored, before any network
// call is attempted.
func (a *app) requireSession() error {
	if !a.store.IsAuthenticated() {
		return fmt.Errorf("no hay sesión activa: ejecuta 'sasce auth login'")
	}
	return nil
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
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
	}
	return cmd
}
