// Package service loads the data behind each view from the Brawl-Track API.
// Primary resources fail the whole view; secondary ones come back degraded.
package service

import (
	"context"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
)

// BrawlAPI is the subset of the remote API the loaders use.
type BrawlAPI interface {
	GetBrawlers(ctx context.Context) (*api.BrawlersResponse, error)
	GetRotation(ctx context.Context) ([]api.EventSlotData, error)
	GetPlayer(ctx context.Context, tag, token string) (*api.PlayerData, error)
	GetBattleLog(ctx context.Context, tag, token string) (*api.BattleLogResponse, error)
	GetClub(ctx context.Context, tag, token string) (*api.ClubData, error)
	GetHistory(ctx context.Context, tag string, brawlerID int, token string) ([]api.HistoryPointData, error)
	GetMe(ctx context.Context, token string) (*api.AccountData, error)
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, username, password string) (*api.AuthResponse, error)
}

var _ BrawlAPI = (*api.Client)(nil)
