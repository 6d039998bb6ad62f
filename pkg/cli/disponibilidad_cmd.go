package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

func newDisponibilidadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disponibilidad",
		Short: "Manage room availability blocks (infrastructure coordinator only)",
	}

	cmd.AddCommand(newDisponibilidadListCmd(a))
	cmd.AddCommand(newDisponibilidadCrearCmd(a))
	cmd.AddCommand(newDisponibilidadEliminarCmd(a))
	return cmd
}

func newDisponibilidadListCmd(a *app) *cobra.Command {
	var (
		salon   int
		periodo int
		dia     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a room's availability blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			filtro := domain.OcupacionFiltro{}
			if cmd.Flags().Changed("periodo") {
				filtro.IDPeriodoAcademico = &periodo
			}
			if cmd.Flags().Changed("dia") {
				filtro.DiaSemana = &dia
			}

			ocupaciones, err := a.bundle.Disponibilidad.List(cmd.Context(), salon, filtro)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, ocupaciones)
			}
			rows := make([][]string, 0, len(ocupaciones))
			for i := range ocupaciones {
				o := &ocupaciones[i]
				periodoNombre := strconv.Itoa(o.IDPeriodoAcademico)
				if o.PeriodoAcademico != nil {
					periodoNombre = o.PeriodoAcademico.NombrePeriodo
				}
				rows = append(rows, []string{
					strconv.Itoa(o.IDOcupacion),
					periodoNombre,
					domain.NombreDia(o.DiaSemana),
					o.HoraInicio + "-" + o.HoraFin,
					dashWhenEmpty(o.Motivo),
				})
			}
			return printTable(os.Stdout, []string{"ID", "PERIODO", "DÍA", "HORARIO", "MOTIVO"}, rows)
		},
	}

	cmd.Flags().IntVar(&salon, "salon", 0, "Room id")
	cmd.Flags().IntVar(&periodo, "periodo", 0, "Filter by academic period id")
	cmd.Flags().IntVar(&dia, "dia", 0, "Filter by day of week (0=domingo .. 6=sábado)")
	_ = cmd.MarkFlagRequired("salon")

	return cmd
}

func newDisponibilidadCrearCmd(a *app) *cobra.Command {
	var (
		salon  int
		req    domain.OcupacionRequest
		motivo string
	)

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Block a weekly time window for a room",
		Example: `  sasce disponibilidad crear --salon 3 --periodo 2 --dia 1 \
    --inicio 08:00 --fin 10:00 --motivo "Mantenimiento"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			req.Motivo = motivo
			if err := controller.ValidateOcupacion(req); err != nil {
				return err
			}

			ocupacion, err := a.bundle.Disponibilidad.Create(cmd.Context(), salon, req)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, ocupacion)
			}
			fmt.Fprintf(os.Stdout, "Ocupación %d registrada: %s %s-%s\n",
				ocupacion.IDOcupacion, domain.NombreDia(ocupacion.DiaSemana),
				ocupacion.HoraInicio, ocupacion.HoraFin)
			return nil
		},
	}

	cmd.Flags().IntVar(&salon, "salon", 0, "Room id")
	cmd.Flags().IntVar(&req.IDPeriodoAcademico, "periodo", 0, "Academic period id")
	cmd.Flags().IntVar(&req.DiaSemana, "dia", 0, "Day of week (0=domingo .. 6=sábado)")
	cmd.Flags().StringVar(&req.HoraInicio, "inicio", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&req.HoraFin, "fin", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&motivo, "motivo", "", "Reason (optional)")
	for _, f := range []string{"salon", "periodo", "dia", "inicio", "fin"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newDisponibilidadEliminarCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Delete an availability block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("confirma la eliminación con --yes")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := a.bundle.Disponibilidad.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Ocupación %d eliminada\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}
