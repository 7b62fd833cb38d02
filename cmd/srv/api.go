package main

import (
	"log"
	"net/http"

	"github.com/blindbox-labs/backend/internal/middleware"
	"github.com/blindbox-labs/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadContext()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	httpServer := &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on %s\n", s.configs.ApiServer.Address())
	if err := httpServer.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.AllowCors())
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getBox", s.catalogDomain.GetBox)
		router.GET(publicRouter, "/getBoxes", s.catalogDomain.GetBoxes)
		router.GET(publicRouter, "/getTopBoxes", s.statisticDomain.GetTopBoxes)
	}

	// These following APIs need authentication with an Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	{
		// Purchase API
		router.POST(authRouter, "/buyBox", s.purchaseDomain.BuyBox)

		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getMyOrders", s.orderDomain.GetMyOrders)
		router.GET(authRouter, "/getMyPrizes", s.libraryDomain.GetMyPrizes)

		// Back office API
		router.POST(authRouter, "/createBox", s.catalogDomain.CreateBox)
		router.POST(authRouter, "/updateBox", s.catalogDomain.UpdateBox)
		router.POST(authRouter, "/createPrize", s.catalogDomain.CreatePrize)
		router.POST(authRouter, "/deposit", s.userDomain.Deposit)
	}
}
