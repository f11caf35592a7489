package handler

import (
	"fmt"
	"os"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/export"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/student"
	"github.com/fekuna/bao-console/internal/student/dto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type StudentHandler struct {
	uc     student.UseCase
	logger logger.ZapLogger
}

func NewStudentHandler(uc student.UseCase, log logger.ZapLogger) *StudentHandler {
	return &StudentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StudentHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "students",
		Aliases: []string{"student", "users"},
		Short:   "Manage student records",
	}
	cmd.AddCommand(h.listCmd(), h.getCmd(), h.createCmd(), h.updateCmd(), h.deleteCmd(), h.exportCmd())
	return cli.Annotate(cmd, auth.ViewStudents)
}

func (h *StudentHandler) listCmd() *cobra.Command {
	filters := &dto.StudentFilters{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := h.uc.ListStudents(cmd.Context(), filters)
			if err != nil {
				return err
			}
			printStudents(cmd, students)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "match first/last name, college or program")
	cmd.Flags().StringVar(&filters.College, "college", listing.All, "only this college")
	return cmd
}

func (h *StudentHandler) exportCmd() *cobra.Command {
	filters := &dto.StudentFilters{}
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write students as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := h.uc.ListStudents(cmd.Context(), filters)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return export.Students(cmd.OutOrStdout(), students)
			}
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			defer f.Close()
			if err := export.Students(f, students); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d students to %s\n", len(students), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file path, stdout when empty")
	cmd.Flags().StringVar(&filters.College, "college", listing.All, "only this college")
	return cmd
}

func (h *StudentHandler) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			s, err := h.uc.GetStudent(cmd.Context(), id)
			if err != nil {
				return err
			}
			printStudents(cmd, []model.Student{*s})
			return nil
		},
	}
}

func (h *StudentHandler) createCmd() *cobra.Command {
	input := &dto.CreateStudentInput{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := h.uc.CreateStudent(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created student #%d %s\n", s.ID, s.FullName())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input.FirstName, "firstname", "", "first name")
	f.StringVar(&input.LastName, "lastname", "", "last name")
	f.StringVar(&input.College, "college", "", "college")
	f.StringVar(&input.Program, "program", "", "program")
	return cmd
}

func (h *StudentHandler) updateCmd() *cobra.Command {
	var first, last, college, program string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a student; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			input := &dto.UpdateStudentInput{
				ID:        id,
				FirstName: cli.Changed(cmd, "firstname", first),
				LastName:  cli.Changed(cmd, "lastname", last),
				College:   cli.Changed(cmd, "college", college),
				Program:   cli.Changed(cmd, "program", program),
			}
			s, err := h.uc.UpdateStudent(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated student #%d %s\n", s.ID, s.FullName())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&first, "firstname", "", "first name")
	f.StringVar(&last, "lastname", "", "last name")
	f.StringVar(&college, "college", "", "college")
	f.StringVar(&program, "program", "", "program")
	return cmd
}

func (h *StudentHandler) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			ok, err := cli.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete student #%d?", id), yes)
			if err != nil || !ok {
				return err
			}
			if err := h.uc.DeleteStudent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted student #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func printStudents(cmd *cobra.Command, students []model.Student) {
	w := cli.NewTable(cmd.OutOrStdout())
	cli.Row(w, "ID", "NAME", "COLLEGE", "PROGRAM")
	for _, s := range students {
		cli.Row(w, s.ID, s.FullName(), s.College, s.Program)
	}
	_ = w.Flush()
}
