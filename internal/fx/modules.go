package fx

import (
	"league-tracker/internal/api"
	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/logger"
	"league-tracker/internal/repository"
	"league-tracker/internal/server"
	"league-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideProfileService(riot *api.RiotClient, searches *repository.SearchRepository, log zerolog.Logger) *service.ProfileService {
	return service.NewProfileService(riot, searches, log)
}

func ProvideMatchService(riot *api.RiotClient, log zerolog.Logger) *service.MatchService {
	return service.NewMatchService(riot, log)
}

func ProvideServer(profiles *service.ProfileService, matches *service.MatchService, searches *repository.SearchRepository, assets *api.DDragonClient, log zerolog.Logger) *server.Server {
	return server.NewServer(profiles, matches, searches, assets, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewSearchRepository),
	// api clients
	fx.Provide(api.NewRiotClient),
	fx.Provide(api.NewDDragonClient),
	// svc
	fx.Provide(ProvideProfileService),
	fx.Provide(ProvideMatchService),
	// server
	fx.Provide(ProvideServer),
	fx.Provide(server.NewRouter),
)
