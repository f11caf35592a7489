package handler

import (
	"fmt"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/auth/dto"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AuthHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out and manage accounts",
	}
	cmd.AddCommand(h.loginCmd(), h.logoutCmd(), h.registerCmd(), h.meCmd())
	return cmd
}

func (h *AuthHandler) loginCmd() *cobra.Command {
	input := &dto.LoginInput{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Password == "" {
				pw, err := cli.ReadPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				input.Password = pw
			}
			u, err := h.uc.Login(cmd.Context(), input)
			if err != nil {
				h.logger.Debug("login failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", u.DisplayName(), u.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (h *AuthHandler) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.uc.Logout(cmd.Context()); err != nil {
				// the local session is gone either way
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (h *AuthHandler) registerCmd() *cobra.Command {
	input := &dto.RegisterInput{}
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an admin or student account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Role = model.Role(role)
			if input.Password == "" {
				pw, err := cli.ReadPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				input.Password = pw
			}
			if input.ConfirmPassword == "" {
				pw, err := cli.ReadPassword(cmd, "Confirm password: ")
				if err != nil {
					return err
				}
				input.ConfirmPassword = pw
			}
			res, err := h.uc.Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", res.Message, res.User.Email, res.User.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&input.Email, "email", "e", "", "account email")
	f.StringVarP(&input.Password, "password", "p", "", "password (prompted when omitted)")
	f.StringVar(&input.ConfirmPassword, "confirm-password", "", "password confirmation (prompted when omitted)")
	f.StringVar(&role, "role", string(model.RoleStudent), "admin or student")
	f.StringVar(&input.FirstName, "firstname", "", "first name")
	f.StringVar(&input.LastName, "lastname", "", "last name")
	f.StringVar(&input.College, "college", "", "college (students)")
	f.StringVar(&input.Program, "program", "", "program (students)")
	return cmd
}

func (h *AuthHandler) meCmd() *cobra.Command {
	return cli.Annotate(&cobra.Command{
		Use:   "me",
		Short: "Show the current session identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := h.uc.Me(cmd.Context())
			if err != nil {
				return err
			}
			w := cli.NewTable(cmd.OutOrStdout())
			cli.Row(w, "Name", u.DisplayName())
			cli.Row(w, "Email", u.Email)
			cli.Row(w, "Role", u.Role)
			if u.EntityID != nil {
				cli.Row(w, "Entity", *u.EntityID)
			}
			if d := u.EntityData; d != nil && d.College != "" {
				cli.Row(w, "College", d.College)
				cli.Row(w, "Program", d.Program)
			}
			return w.Flush()
		},
	}, auth.ViewProfile)
}
