package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/hungercard/backend/internal/common"
	"github.com/hungercard/backend/internal/middleware"
	"github.com/hungercard/backend/pkg/router"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadPublisher()
	s.loadEthClient()
	s.loadStorage()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on %s", s.cfg.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	s.logger.Infof("Server stopped")

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.cfg, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public API
	publicRouter := s.router.Branch()
	publicRouter.After(middleware.HandleSaveSession())
	{
		router.POST(publicRouter, "/createApplication", s.applicationDomain.Create)
	}

	// Authenticated API
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/getApplication", s.applicationDomain.Get)
	}

	// Admin API
	adminRouter := s.router.Branch()
	adminRouter.Before(middleware.Authenticate())
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.GET(adminRouter, "/getListApplication", s.applicationDomain.GetList)
		router.POST(adminRouter, "/approveApplication", s.applicationDomain.Approve)
		router.POST(adminRouter, "/rejectApplication", s.applicationDomain.Reject)

		router.POST(adminRouter, "/createScoringConfig", s.scoringConfigDomain.Create)
		router.POST(adminRouter, "/updateScoringConfig", s.scoringConfigDomain.Update)
		router.GET(adminRouter, "/getListScoringConfig", s.scoringConfigDomain.GetList)
		router.POST(adminRouter, "/upsertNFTBoost", s.scoringConfigDomain.UpsertNFTBoost)
		router.POST(adminRouter, "/upsertTokenBoost", s.scoringConfigDomain.UpsertTokenBoost)
		router.GET(adminRouter, "/getListBoostConfig", s.scoringConfigDomain.GetBoosts)
	}

	for _, counter := range common.PromCounters {
		prometheus.MustRegister(counter)
	}

	for _, histogram := range common.PromHistograms {
		prometheus.MustRegister(histogram)
	}

	s.router.Mux().Handle("/metrics", promhttp.Handler())
}
