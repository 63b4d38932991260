package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrg/xdg"
	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/favorite"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/repository"
	"github.com/ghaggin/newsgate/internal/session"
	"go.uber.org/zap"
)

const sessionFile = "newsgate/session.json"

var (
	errSignedOut  = errors.New("nenhuma sessão ativa, execute 'newsgate login'")
	errAdminOnly  = errors.New("área restrita a administradores")
	errReaderOnly = errors.New("contas de administrador não têm favoritos")
)

// device is the terminal client: one session persisted per machine, the
// same gate the web screens use.
type device struct {
	client    *api.Client
	sessions  *session.Manager
	gate      *session.Gate
	favorites *favorite.Toggler
	log       *zap.Logger
}

func sessionPath() (string, error) {
	if cfg.CLI.SessionPath != "" {
		return cfg.CLI.SessionPath, nil
	}
	return xdg.ConfigFile(sessionFile)
}

func openDevice() (*device, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, fmt.Errorf("resolving session path: %w", err)
	}

	client, err := api.NewClient(cfg.Backend, logger, nil)
	if err != nil {
		return nil, err
	}

	store := session.NewRepositoryStore(repository.OpenJSON(path, logger))
	sessions := session.NewManager(store, cfg.Session.InactivityTimeout, logger)

	logger.Debug("device session", zap.String("path", path))

	return &device{
		client:   client,
		sessions: sessions,
		// a role mismatch on the terminal should not sign the device out
		gate: session.NewGate(sessions, client, session.GateOptions{
			VerifyProfile: cfg.Session.VerifyProfile,
		}, logger, nil),
		favorites: favorite.NewToggler(client),
		log:       logger,
	}, nil
}

// require runs the gate for role and turns every refusal into an error.
func (d *device) require(ctx context.Context, role session.Role) (*model.User, error) {
	dec := d.gate.Check(ctx, role)

	switch dec.Outcome {
	case session.Allow:
		return dec.User, nil
	case session.Home:
		return nil, errAdminOnly
	case session.Admin:
		return nil, errReaderOnly
	case session.Abandon:
		return nil, ctx.Err()
	default:
		return nil, errSignedOut
	}
}

// describe turns err into the line shown to the user.
func describe(err error) string {
	var se *api.StatusError
	switch {
	case errors.Is(err, session.ErrNoSession):
		return errSignedOut.Error()
	case errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, api.ErrUnreachable),
		errors.As(err, &se):
		return api.Message(err)
	}
	return err.Error()
}
