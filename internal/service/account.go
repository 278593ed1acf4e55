package service

import (
	"context"
	"fmt"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"

	"github.com/rs/zerolog"
)

type Dashboard struct {
	Account domain.Account
	// Player is nil when the account has no linked player tag.
	Player *PlayerView
}

// AccountService backs the authenticated "my stats" view.
type AccountService struct {
	api     BrawlAPI
	players *PlayerService
	logger  zerolog.Logger
}

func NewAccountService(api BrawlAPI, players *PlayerService, logger zerolog.Logger) *AccountService {
	return &AccountService{api: api, players: players, logger: logger}
}

func (s *AccountService) LoadDashboard(ctx context.Context, token string) (*Dashboard, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	me, err := s.api.GetMe(apiCtx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch account")
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	d := &Dashboard{Account: domain.Account{Username: me.Username, PlayerTag: me.PlayerTag}}
	if me.PlayerTag == "" {
		return d, nil
	}

	d.Player, err = s.players.LoadPlayer(ctx, me.PlayerTag, token)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Login exchanges credentials for a token. It is a passthrough to the API.
func (s *AccountService) Login(ctx context.Context, username, password string) (token, name string, err error) {
	return s.exchange(ctx, s.api.Login, "login rejected", username, password)
}

// Register creates an account and returns its first token.
func (s *AccountService) Register(ctx context.Context, username, password string) (token, name string, err error) {
	return s.exchange(ctx, s.api.Register, "registration rejected", username, password)
}

func (s *AccountService) exchange(
	ctx context.Context,
	call func(ctx context.Context, username, password string) (*api.AuthResponse, error),
	rejected, username, password string,
) (token, name string, err error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := call(apiCtx, username, password)
	if err != nil {
		s.logger.Info().Err(err).Str("username", username).Msg(rejected)
		return "", "", err
	}
	name = resp.Username
	if name == "" {
		name = username
	}
	return resp.Token, name, nil
}
