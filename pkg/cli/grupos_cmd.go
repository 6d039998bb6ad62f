package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

func newGruposCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grupos",
		Short: "Manage student groups (coordinator only)",
	}

	cmd.AddCommand(newGruposListCmd(a))
	cmd.AddCommand(newGruposGetCmd(a))
	cmd.AddCommand(newGruposCreateCmd(a))
	cmd.AddCommand(newGruposUpdateCmd(a))
	cmd.AddCommand(newGruposDesactivarCmd(a))
	cmd.AddCommand(newGruposNivelesCmd(a))
	return cmd
}

func newGruposListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			grupos, err := a.bundle.Grupos.List(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, grupos)
			}
			rows := make([][]string, 0, len(grupos))
			for i := range grupos {
				g := &grupos[i]
				nivel := "-"
				if g.NivelAcademico != nil {
					nivel = g.NivelAcademico.NombreNivel
				}
				rows = append(rows, []string{
					strconv.Itoa(g.IDGrupo),
					g.NombreGrupo,
					nivel,
					strconv.Itoa(g.CantidadEstudiantes),
					boolSiNo(g.EstaActivo),
				})
			}
			return printTable(os.Stdout, []string{"ID", "NOMBRE", "NIVEL", "ESTUDIANTES", "ACTIVO"}, rows)
		},
	}
}

func newGruposGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			grupo, err := a.bundle.Grupos.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, grupo)
			}
			nivel := "-"
			if grupo.NivelAcademico != nil {
				nivel = grupo.NivelAcademico.NombreNivel
			}
			rows := [][]string{
				{"ID", strconv.Itoa(grupo.IDGrupo)},
				{"Nombre", grupo.NombreGrupo},
				{"Nivel académico", nivel},
				{"Estudiantes", strconv.Itoa(grupo.CantidadEstudiantes)},
				{"Requisitos", derefOrDash(grupo.RequisitosEspeciales)},
				{"Activo", boolSiNo(grupo.EstaActivo)},
			}
			return printTable(os.Stdout, []string{"CAMPO", "VALOR"}, rows)
		},
	}
}

// grupoRequestFlags registers the shared create/update flags and returns
// the assembler run at execution time, so the optional field can travel as
// null when its flag was not given.
func grupoRequestFlags(cmd *cobra.Command) func() domain.GrupoRequest {
	var (
		nombre     string
		nivel      int
		cantidad   int
		requisitos string
	)
	cmd.Flags().StringVar(&nombre, "nombre", "", "Group name")
	cmd.Flags().IntVar(&nivel, "nivel", 0, "Academic level id")
	cmd.Flags().IntVar(&cantidad, "estudiantes", 0, "Student count")
	cmd.Flags().StringVar(&requisitos, "requisitos", "", "Special requirements (optional)")

	return func() domain.GrupoRequest {
		req := domain.GrupoRequest{
			NombreGrupo:         nombre,
			IDNivelAcademico:    nivel,
			CantidadEstudiantes: cantidad,
		}
		if cmd.Flags().Changed("requisitos") && requisitos != "" {
			req.RequisitosEspeciales = &requisitos
		}
		return req
	}
}

func newGruposCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new group",
	}
	buildReq := grupoRequestFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		req := buildReq()
		if err := controller.ValidateGrupo(req); err != nil {
			return err
		}
		grupo, err := a.bundle.Grupos.Create(cmd.Context(), req)
		if err != nil {
			return err
		}

		if getOutputFormat(cmd) == "json" {
			return printJSON(os.Stdout, grupo)
		}
		fmt.Fprintf(os.Stdout, "Grupo %d creado: %s\n", grupo.IDGrupo, grupo.NombreGrupo)
		return nil
	}
	for _, f := range []string{"nombre", "nivel", "estudiantes"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newGruposUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a group",
		Args:  cobra.ExactArgs(1),
	}
	buildReq := grupoRequestFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		req := buildReq()
		if err := controller.ValidateGrupo(req); err != nil {
			return err
		}
		grupo, err := a.bundle.Grupos.Update(cmd.Context(), id, req)
		if err != nil {
			return err
		}

		if getOutputFormat(cmd) == "json" {
			return printJSON(os.Stdout, grupo)
		}
		fmt.Fprintf(os.Stdout, "Grupo %d actualizado\n", grupo.IDGrupo)
		return nil
	}
	for _, f := range []string{"nombre", "nivel", "estudiantes"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newGruposDesactivarCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "desactivar <id>",
		Short: "Deactivate a group (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("la desactivación de grupos es irreversible: confirma con --yes")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := a.bundle.Grupos.Desactivar(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Grupo %d desactivado\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deactivation")
	return cmd
}

func newGruposNivelesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "niveles",
		Short: "List academic levels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			niveles, err := a.bundle.Grupos.NivelesAcademicos(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, niveles)
			}
			rows := make([][]string, 0, len(niveles))
			for _, n := range niveles {
				rows = append(rows, []string{strconv.Itoa(n.IDNivel), n.NombreNivel})
			}
			return printTable(os.Stdout, []string{"ID", "NOMBRE"}, rows)
		},
	}
}
