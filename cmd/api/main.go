package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-tracker-api/infrastructure/repository"
	"github.com/vfg2006/customer-tracker-api/internal/api"
	"github.com/vfg2006/customer-tracker-api/internal/config"
	"github.com/vfg2006/customer-tracker-api/internal/scheduler"
	"github.com/vfg2006/customer-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/customer-tracker-api/pkg/log"
)

func main() {
	_ = log.Setup("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.WithError(err).Warn("Usando nível de log 'info'")
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.Database.Driver).Fatal("Erro ao abrir o armazenamento local")
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar o armazenamento local")
		}
	}()
	logrus.WithField("driver", cfg.Database.Driver).Info("Armazenamento local aberto com sucesso")

	store := tracking.NewService(repo)
	if err := store.Load(ctx); err != nil {
		// As coleções continuam em memória; gravações pendentes são refeitas pelo agendador
		logrus.WithError(err).Warn("Coleções não sincronizadas com o armazenamento local")
	}

	persistenceSyncService := scheduler.NewPersistenceSyncService(store, cfg)
	if err := persistenceSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de persistência")
	} else {
		logrus.Info("Agendador de sincronização de persistência iniciado com sucesso")
	}

	server, err := api.New(cfg, store, persistenceSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
