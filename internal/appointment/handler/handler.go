package handler

import (
	"fmt"

	"github.com/fekuna/bao-console/internal/appointment"
	"github.com/fekuna/bao-console/internal/appointment/dto"
	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/spf13/cobra"
)

type AppointmentHandler struct {
	uc     appointment.UseCase
	logger logger.ZapLogger
}

func NewAppointmentHandler(uc appointment.UseCase, log logger.ZapLogger) *AppointmentHandler {
	return &AppointmentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AppointmentHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appointment"},
		Short:   "Office appointments (not yet available on the server)",
	}
	cmd.AddCommand(h.listCmd(), h.createCmd(), h.deleteCmd())
	return cli.Annotate(cmd, auth.ViewAppointments)
}

func (h *AppointmentHandler) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := h.uc.ListAppointments(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments")
				return nil
			}
			w := cli.NewTable(cmd.OutOrStdout())
			cli.Row(w, "ID", "STUDENT", "DATE", "PURPOSE", "STATUS")
			for _, a := range items {
				date := a.Date
				cli.Row(w, a.ID, a.StudentID, cli.FormatDate(&date), a.Purpose, a.Status)
			}
			return w.Flush()
		},
	}
}

func (h *AppointmentHandler) createCmd() *cobra.Command {
	input := &dto.CreateAppointmentInput{}
	var student string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book an appointment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(student)
			if err != nil {
				return err
			}
			input.StudentID = id
			a, err := h.uc.CreateAppointment(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created appointment #%d\n", a.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&student, "student", "", "student id")
	f.StringVar(&input.Date, "date", "", "date")
	f.StringVar(&input.Time, "time", "", "time")
	f.StringVar(&input.Purpose, "purpose", "", "purpose")
	return cmd
}

func (h *AppointmentHandler) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			return h.uc.DeleteAppointment(cmd.Context(), id)
		},
	}
}
