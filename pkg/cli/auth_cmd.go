package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored session",
	}

	cmd.AddCommand(newAuthLoginCmd(a))
	cmd.AddCommand(newAuthLogoutCmd(a))
	cmd.AddCommand(newAuthStatusCmd(a))
	return cmd
}

func newAuthLoginCmd(a *app) *cobra.Command {
	var (
		correo   string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session for the active profile",
		Example: `  # Prompt for the password on the terminal
  sasce auth login --correo admin@colegio.edu`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := promptPassword("Contraseña: ")
				if err != nil {
					return err
				}
				password = pw
			}

			usuario, err := a.store.Login(cmd.Context(), correo, password)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, usuario)
			}
			fmt.Fprintf(os.Stdout, "Sesión iniciada como %s (%s)\n", usuario.NombreCompleto(), usuario.NombreRol())
			return nil
		},
	}

	cmd.Flags().StringVar(&correo, "correo", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password (omit to be prompted)")
	_ = cmd.MarkFlagRequired("correo")

	return cmd
}

func newAuthLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.store.Logout()
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"status": "ok"})
			}
			fmt.Fprintln(os.Stdout, "Sesión cerrada")
			return nil
		},
	}
}

func newAuthStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session and token expiry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.store.IsAuthenticated() {
				if getOutputFormat(cmd) == "json" {
					return printJSON(os.Stdout, map[string]any{"authenticated": false})
				}
				fmt.Fprintln(os.Stdout, "Sin sesión activa")
				return nil
			}

			usuario := a.store.CurrentUser()
			expiry := tokenExpiry(a.store.Token())

			if getOutputFormat(cmd) == "json" {
				out := map[string]any{
					"authenticated": true,
					"usuario":       usuario,
					"profile":       a.profile,
				}
				if !expiry.IsZero() {
					out["token_expira"] = expiry.Format(time.RFC3339)
				}
				return printJSON(os.Stdout, out)
			}

			rows := [][]string{
				{"Usuario", usuario.NombreCompleto()},
				{"Correo", usuario.Correo},
				{"Rol", usuario.NombreRol()},
				{"Perfil", a.profile},
			}
			if !expiry.IsZero() {
				rows = append(rows, []string{"Token expira", expiry.Local().Format("2006-01-02 15:04")})
			}
			return printTable(os.Stdout, []string{"CAMPO", "VALOR"}, rows)
		},
	}
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// client has no key material and only needs the timestamp for display.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// promptPassword reads a password without echoing when stdin is a
// terminal, falling back to a plain line read otherwise (pipes, tests).
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(data), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
