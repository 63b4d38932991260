package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/form"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	errInvalidForm    = errors.New("dados inválidos")
	errBadCredentials = errors.New("email ou senha inválidos")
)

var (
	flagEmail    string
	flagPassword string
	flagName     string
	flagConfirm  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in on this device",
	Long: `Sign in with email and password. The session is kept in the device
session file until logout, a rejected token or the inactivity timeout.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session on this device",
	RunE:  runLogout,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a reader account",
	RunE:  runSignup,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the signed-in profile",
	Long: `Show the signed-in profile. Passing --nome, --email or --senha updates it;
fields left out keep their current value.`,
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, signupCmd, profileCmd)

	loginCmd.Flags().StringVar(&flagEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&flagPassword, "senha", "", "account password")

	signupCmd.Flags().StringVar(&flagName, "nome", "", "full name")
	signupCmd.Flags().StringVar(&flagEmail, "email", "", "account email")
	signupCmd.Flags().StringVar(&flagPassword, "senha", "", "password, at least 6 characters")
	signupCmd.Flags().StringVar(&flagConfirm, "confirmar", "", "password again")

	profileCmd.Flags().StringVar(&flagName, "nome", "", "new name")
	profileCmd.Flags().StringVar(&flagEmail, "email", "", "new email")
	profileCmd.Flags().StringVar(&flagPassword, "senha", "", "new password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	ctx := cmd.Context()

	f := form.Login{Email: flagEmail, Password: flagPassword}
	if errs := f.Validate(); errs.Any() {
		p.fields(errs)
		return errInvalidForm
	}

	d, err := openDevice()
	if err != nil {
		return err
	}

	res, err := d.client.Login(ctx, f.Credentials())
	if err != nil {
		var ue *api.UnauthorizedError
		if errors.As(err, &ue) {
			if ue.Message == "" {
				return errBadCredentials
			}
			return errors.New(ue.Message)
		}
		return err
	}

	if err := d.sessions.Begin(ctx, res.Token, res.User); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	p.success("Bem-vindo, %s!", res.User.Name)
	if res.User.IsAdmin {
		p.info("Conta de administrador.")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	d, err := openDevice()
	if err != nil {
		return err
	}

	if err := d.sessions.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	newPrinter(cmd).success("Sessão encerrada.")
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)

	f := form.Signup{
		Name:            flagName,
		Email:           flagEmail,
		Password:        flagPassword,
		ConfirmPassword: flagConfirm,
	}
	if errs := f.Validate(); errs.Any() {
		p.fields(errs)
		return errInvalidForm
	}

	d, err := openDevice()
	if err != nil {
		return err
	}

	if err := d.client.Signup(cmd.Context(), f.Request()); err != nil {
		return err
	}

	p.success("Cadastro realizado com sucesso! Faça login para continuar.")
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	ctx := cmd.Context()

	d, err := openDevice()
	if err != nil {
		return err
	}

	user, err := d.require(ctx, session.RoleAny)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("nome") || flags.Changed("email") || flags.Changed("senha") {
		user, err = updateProfile(cmd, d, user)
		if err != nil {
			return err
		}
		p.success("Perfil atualizado com sucesso!")
	}

	printProfile(p, d, cmd, user)
	return nil
}

func updateProfile(cmd *cobra.Command, d *device, current *model.User) (*model.User, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()

	f := form.Profile{Name: current.Name, Email: current.Email}
	if flags.Changed("nome") {
		f.Name = flagName
	}
	if flags.Changed("email") {
		f.Email = flagEmail
	}
	if flags.Changed("senha") {
		f.Password = flagPassword
	}

	if errs := f.Validate(); errs.Any() {
		newPrinter(cmd).fields(errs)
		return nil, errInvalidForm
	}

	var updated *model.User
	err := d.sessions.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		updated, err = d.client.UpdateProfile(ctx, token, f.Update())
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := d.sessions.SetUser(ctx, *updated); err != nil {
		d.log.Warn("failed caching user snapshot", zap.Error(err))
	}
	return updated, nil
}

func printProfile(p *printer, d *device, cmd *cobra.Command, u *model.User) {
	role := "leitor"
	if u.IsAdmin {
		role = "administrador"
	}

	p.info("Nome:   %s", u.Name)
	p.info("Email:  %s", u.Email)
	p.info("Perfil: %s", role)

	sess, err := d.sessions.Get(cmd.Context())
	if err != nil {
		return
	}
	if !sess.IssuedAt.IsZero() {
		p.info("Login:  %s", sess.IssuedAt.Format(time.DateTime))
	}
	if !sess.ExpiresAt.IsZero() {
		p.info("Expira: %s", sess.ExpiresAt.Format(time.DateTime))
	}
}
