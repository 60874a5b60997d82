package app

import (
	"github.com/albertshemyakin2009-sys/noolix/internal/data/repos"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

type Repos struct {
	RepairRuns repos.RepairRunRepo
}

func wireRepos(clients Clients, log *logger.Logger) Repos {
	if clients.DB == nil {
		return Repos{}
	}
	return Repos{
		RepairRuns: repos.NewRepairRunRepo(clients.DB.DB(), log),
	}
}
