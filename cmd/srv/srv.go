package main

import (
	"net/http"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bwmarrin/snowflake"
	"github.com/splatbuilds/backend/config"
	"github.com/splatbuilds/backend/internal/domain"
	"github.com/splatbuilds/backend/internal/middleware"
	"github.com/splatbuilds/backend/internal/repository"
	"github.com/splatbuilds/backend/pkg/logger"
	"github.com/splatbuilds/backend/pkg/router"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	userRepo      repository.UserRepository
	buildRepo     repository.BuildRepository
	placementRepo repository.XRankPlacementRepository

	buildDomain domain.BuildDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	if _, err := toml.DecodeFile(cctx.String("config"), &s.configs); err != nil {
		panic(err)
	}

	// Secrets can be kept out of the file.
	if password := os.Getenv("MYSQL_PASSWORD"); password != "" {
		s.configs.Database.Password = password
	}
	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		s.configs.Auth.AccessToken.Secret = secret
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.buildRepo = repository.NewBuildRepository()
	s.placementRepo = repository.NewXRankPlacementRepository()
}

func (s *srv) loadDomains() {
	node, err := snowflake.NewNode(s.configs.Snowflake.Node)
	if err != nil {
		panic(err)
	}

	s.buildDomain = domain.NewBuildDomain(s.buildRepo, s.placementRepo, node)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.AllowCors)
	s.router.Use(middleware.ParseToken)

	authRouter := s.router.Branch()
	authRouter.Use(middleware.Authenticate)
	{
		router.POST(authRouter, "/createBuild", s.buildDomain.Create)
		router.POST(authRouter, "/updateBuild", s.buildDomain.Update)
		router.POST(authRouter, "/deleteBuild", s.buildDomain.Delete)
	}

	// Public API.
	router.GET(s.router, "/getBuilds", s.buildDomain.GetList)
	router.GET(s.router, "/countBuilds", s.buildDomain.Count)
	router.GET(s.router, "/getBuildsByWeapon", s.buildDomain.GetListByWeapon)
}
