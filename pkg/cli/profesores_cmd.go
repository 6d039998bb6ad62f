package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

func newProfesoresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profesores",
		Short: "Manage teacher records (coordinator only)",
	}

	cmd.AddCommand(newProfesoresListCmd(a))
	cmd.AddCommand(newProfesoresGetCmd(a))
	cmd.AddCommand(newProfesoresCreateCmd(a))
	cmd.AddCommand(newProfesoresUpdateCmd(a))
	cmd.AddCommand(newProfesoresEliminarCmd(a))
	return cmd
}

func newProfesoresListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all teachers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			profesores, err := a.bundle.Profesores.List(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, profesores)
			}
			rows := make([][]string, 0, len(profesores))
			for i := range profesores {
				p := &profesores[i]
				rows = append(rows, []string{
					strconv.Itoa(p.IDProfesor),
					p.NumeroIdentificacion,
					p.NombreCompleto(),
					p.Correo,
					boolSiNo(p.Activo()),
				})
			}
			return printTable(os.Stdout, []string{"ID", "IDENTIFICACIÓN", "NOMBRE", "CORREO", "ACTIVO"}, rows)
		},
	}
}

func newProfesoresGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			profesor, err := a.bundle.Profesores.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, profesor)
			}
			rows := [][]string{
				{"ID", strconv.Itoa(profesor.IDProfesor)},
				{"Identificación", profesor.NumeroIdentificacion},
				{"Nombre", profesor.NombreCompleto()},
				{"Correo", profesor.Correo},
				{"Especialidades", dashWhenEmpty(strings.Join(profesor.Especialidades, ", "))},
				{"Hoja de vida", dashWhenEmpty(profesor.HojaVidaURL)},
				{"Activo", boolSiNo(profesor.Activo())},
			}
			return printTable(os.Stdout, []string{"CAMPO", "VALOR"}, rows)
		},
	}
}

// profesorFormFlags registers the shared create/update flags and returns
// the assembler run at execution time.
func profesorFormFlags(cmd *cobra.Command) func() (domain.ProfesorForm, error) {
	var (
		identificacion  string
		nombre          string
		apellido        string
		correo          string
		biografia       string
		cualificaciones string
		especialidades  []string
		hojaVida        string
	)
	cmd.Flags().StringVar(&identificacion, "identificacion", "", "Identification number")
	cmd.Flags().StringVar(&nombre, "nombre", "", "First name")
	cmd.Flags().StringVar(&apellido, "apellido", "", "Last name")
	cmd.Flags().StringVar(&correo, "correo", "", "Email")
	cmd.Flags().StringVar(&biografia, "biografia", "", "Biography (optional)")
	cmd.Flags().StringVar(&cualificaciones, "cualificaciones", "", "Qualifications (optional)")
	cmd.Flags().StringSliceVar(&especialidades, "especialidades", nil, "Specialties, comma separated")
	cmd.Flags().StringVar(&hojaVida, "hoja-vida", "", "Path to the CV PDF")

	return func() (domain.ProfesorForm, error) {
		form := domain.ProfesorForm{
			NumeroIdentificacion: identificacion,
			Nombre:               nombre,
			Apellido:             apellido,
			Correo:               correo,
			Biografia:            biografia,
			Cualificaciones:      cualificaciones,
			Especialidades:       especialidades,
		}
		if hojaVida != "" {
			data, err := os.ReadFile(hojaVida)
			if err != nil {
				return form, fmt.Errorf("read hoja de vida: %w", err)
			}
			form.HojaVida = data
			form.HojaVidaNombre = filepath.Base(hojaVida)
		}
		return form, nil
	}
}

func newProfesoresCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new teacher with their CV",
	}
	buildForm := profesorFormFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		form, err := buildForm()
		if err != nil {
			return err
		}
		if len(form.HojaVida) == 0 {
			return fmt.Errorf("la hoja de vida es obligatoria al crear un profesor")
		}
		if err := controller.ValidateProfesor(form); err != nil {
			return err
		}
		profesor, err := a.bundle.Profesores.Create(cmd.Context(), form)
		if err != nil {
			return err
		}

		if getOutputFormat(cmd) == "json" {
			return printJSON(os.Stdout, profesor)
		}
		fmt.Fprintf(os.Stdout, "Profesor %d creado: %s\n", profesor.IDProfesor, profesor.NombreCompleto())
		return nil
	}
	for _, f := range []string{"identificacion", "nombre", "apellido", "correo", "hoja-vida"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newProfesoresUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a teacher; omit --hoja-vida to keep the stored CV",
		Args:  cobra.ExactArgs(1),
	}
	buildForm := profesorFormFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		form, err := buildForm()
		if err != nil {
			return err
		}
		if err := controller.ValidateProfesor(form); err != nil {
			return err
		}
		profesor, err := a.bundle.Profesores.Update(cmd.Context(), id, form)
		if err != nil {
			return err
		}

		if getOutputFormat(cmd) == "json" {
			return printJSON(os.Stdout, profesor)
		}
		fmt.Fprintf(os.Stdout, "Profesor %d actualizado\n", profesor.IDProfesor)
		return nil
	}
	for _, f := range []string{"identificacion", "nombre", "apellido", "correo"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newProfesoresEliminarCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Soft-delete a teacher record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("confirma la baja del profesor con --yes")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := a.bundle.Profesores.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Profesor %d dado de baja\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the soft delete")
	return cmd
}
