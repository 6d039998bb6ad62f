package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

func newSalonesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salones",
		Short: "Manage rooms (infrastructure coordinator only)",
	}

	cmd.AddCommand(newSalonesListCmd(a))
	cmd.AddCommand(newSalonesCreateCmd(a))
	cmd.AddCommand(newSalonesEdificiosCmd(a))
	cmd.AddCommand(newSalonesTiposRecursoCmd(a))
	cmd.AddCommand(newSalonesPeriodosCmd(a))
	return cmd
}

func newSalonesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			salones, err := a.bundle.Salones.List(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, salones)
			}
			rows := make([][]string, 0, len(salones))
			for i := range salones {
				s := &salones[i]
				edificio := "-"
				if s.Edificio != nil {
					edificio = s.Edificio.NombreEdificio
				}
				rows = append(rows, []string{
					strconv.Itoa(s.IDSalon),
					s.Etiqueta(),
					edificio,
					strconv.Itoa(s.Capacidad),
					strconv.Itoa(len(s.Recursos)),
					boolSiNo(s.EstaActivo),
				})
			}
			return printTable(os.Stdout, []string{"ID", "SALÓN", "EDIFICIO", "CAPACIDAD", "RECURSOS", "ACTIVO"}, rows)
		},
	}
}

func newSalonesCreateCmd(a *app) *cobra.Command {
	var (
		codigo      string
		nombre      string
		edificio    int
		piso        int
		capacidad   int
		descripcion string
		recursos    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new room",
		Example: `  # A room with two resource rows (tipo:cantidad[:notas])
  sasce salones create --codigo A-101 --edificio 1 --capacidad 35 \
    --recurso 2:1:"proyector fijo" --recurso 5:30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			req := domain.SalonRequest{
				CodigoSalon: codigo,
				IDEdificio:  edificio,
				Capacidad:   capacidad,
				Recursos:    []domain.RecursoSalon{},
			}
			if cmd.Flags().Changed("nombre") && nombre != "" {
				req.NombreSalon = &nombre
			}
			if cmd.Flags().Changed("piso") {
				req.NumeroPiso = &piso
			}
			if cmd.Flags().Changed("descripcion") && descripcion != "" {
				req.DescripcionUbicacion = &descripcion
			}
			for _, spec := range recursos {
				recurso, err := parseRecurso(spec)
				if err != nil {
					return err
				}
				req.Recursos = append(req.Recursos, recurso)
			}
			if err := controller.ValidateSalon(req); err != nil {
				return err
			}

			salon, err := a.bundle.Salones.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, salon)
			}
			fmt.Fprintf(os.Stdout, "Salón %d creado: %s\n", salon.IDSalon, salon.Etiqueta())
			return nil
		},
	}

	cmd.Flags().StringVar(&codigo, "codigo", "", "Room code")
	cmd.Flags().StringVar(&nombre, "nombre", "", "Room name (optional)")
	cmd.Flags().IntVar(&edificio, "edificio", 0, "Building id")
	cmd.Flags().IntVar(&piso, "piso", 0, "Floor number (optional)")
	cmd.Flags().IntVar(&capacidad, "capacidad", 0, "Seat capacity")
	cmd.Flags().StringVar(&descripcion, "descripcion", "", "Location description (optional)")
	cmd.Flags().StringArrayVar(&recursos, "recurso", nil, "Resource row as tipo:cantidad[:notas]; repeatable")
	for _, f := range []string{"codigo", "edificio", "capacidad"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

// parseRecurso parses a tipo:cantidad[:notas] resource spec.
func parseRecurso(spec string) (domain.RecursoSalon, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return domain.RecursoSalon{}, fmt.Errorf("invalid --recurso %q: expected tipo:cantidad[:notas]", spec)
	}
	tipo, err := strconv.Atoi(parts[0])
	if err != nil || tipo <= 0 {
		return domain.RecursoSalon{}, fmt.Errorf("invalid --recurso %q: bad resource type id", spec)
	}
	cantidad, err := strconv.Atoi(parts[1])
	if err != nil || cantidad <= 0 {
		return domain.RecursoSalon{}, fmt.Errorf("invalid --recurso %q: bad quantity", spec)
	}
	recurso := domain.RecursoSalon{IDTipoRecurso: tipo, Cantidad: cantidad}
	if len(parts) == 3 {
		recurso.Notas = parts[2]
	}
	return recurso, nil
}

func newSalonesEdificiosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edificios",
		Short: "List buildings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			edificios, err := a.bundle.Salones.Edificios(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, edificios)
			}
			rows := make([][]string, 0, len(edificios))
			for _, e := range edificios {
				rows = append(rows, []string{strconv.Itoa(e.IDEdificio), e.NombreEdificio})
			}
			return printTable(os.Stdout, []string{"ID", "NOMBRE"}, rows)
		},
	}
}

func newSalonesTiposRecursoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tipos-recurso",
		Short: "List resource types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			tipos, err := a.bundle.Salones.TiposRecurso(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, tipos)
			}
			rows := make([][]string, 0, len(tipos))
			for _, t := range tipos {
				rows = append(rows, []string{strconv.Itoa(t.IDTipoRecurso), t.NombreTipo})
			}
			return printTable(os.Stdout, []string{"ID", "NOMBRE"}, rows)
		},
	}
}

func newSalonesPeriodosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "periodos",
		Short: "List academic periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			periodos, err := a.bundle.Salones.PeriodosAcademicos(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, periodos)
			}
			rows := make([][]string, 0, len(periodos))
			for _, p := range periodos {
				rows = append(rows, []string{strconv.Itoa(p.IDPeriodo), p.NombrePeriodo, boolSiNo(p.EstaActivo)})
			}
			return printTable(os.Stdout, []string{"ID", "NOMBRE", "ACTIVO"}, rows)
		},
	}
}
