package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sasce-admin/internal/domain"
)

func newUsuariosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuarios",
		Short: "Manage system accounts (administrator only)",
	}

	cmd.AddCommand(newUsuariosListCmd(a))
	cmd.AddCommand(newUsuariosCreateCmd(a))
	cmd.AddCommand(newUsuariosDesactivarCmd(a))
	cmd.AddCommand(newUsuariosActivarCmd(a))
	return cmd
}

func newUsuariosListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			usuarios, err := a.bundle.Usuarios.List(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, usuarios)
			}
			rows := make([][]string, 0, len(usuarios))
			for i := range usuarios {
				u := &usuarios[i]
				rows = append(rows, []string{
					strconv.Itoa(u.IDUsuario),
					u.NombreCompleto(),
					u.Correo,
					u.NombreRol(),
					boolSiNo(u.EstaActivo),
				})
			}
			return printTable(os.Stdout, []string{"ID", "NOMBRE", "CORREO", "ROL", "ACTIVO"}, rows)
		},
	}
}

func newUsuariosCreateCmd(a *app) *cobra.Command {
	var req domain.CreateUsuarioRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			usuario, err := a.bundle.Usuarios.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, usuario)
			}
			fmt.Fprintf(os.Stdout, "Usuario %d creado: %s\n", usuario.IDUsuario, usuario.NombreCompleto())
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Nombre, "nombre", "", "First name")
	cmd.Flags().StringVar(&req.Apellido, "apellido", "", "Last name")
	cmd.Flags().StringVar(&req.NombreUsuario, "nombre-usuario", "", "Username")
	cmd.Flags().StringVar(&req.Correo, "correo", "", "Email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&req.NombreRol, "rol", "", "Role name (Administrador, Coordinador, CoordinadorInfraestructura, Profesor, Estudiante)")
	for _, f := range []string{"nombre", "apellido", "nombre-usuario", "correo", "password", "rol"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newUsuariosDesactivarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "desactivar <id>",
		Short: "Deactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if u := a.store.CurrentUser(); u != nil && u.IDUsuario == id {
				return fmt.Errorf("no puedes desactivar tu propia cuenta")
			}
			if err := a.bundle.Usuarios.Desactivar(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Usuario %d desactivado\n", id)
			return nil
		},
	}
}

func newUsuariosActivarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activar <id>",
		Short: "Reactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := a.bundle.Usuarios.Activar(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Usuario %d activado\n", id)
			return nil
		},
	}
}
