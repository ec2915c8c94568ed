package main

import (
	"os"

	"pointage/backend/foundation/web"
	"pointage/backend/internal/auth"
	"pointage/backend/internal/commands"
	"pointage/backend/internal/pkg/config"
	"pointage/backend/internal/pkg/repository/postgresql"
	"pointage/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("startup failed")
	}
}

func run(log *logrus.Logger) error {
	var args struct {
		Migrate bool `conf:"default:false,help:apply schema migrations and exit"`
		Debug   bool `conf:"default:false,help:log every sql query"`
	}

	if err := conf.Parse(os.Args[1:], "POINTAGE", &args); err != nil {
		if err == conf.ErrHelpWanted {
			usage, uerr := conf.Usage("POINTAGE", &args)
			if uerr != nil {
				return uerr
			}
			log.Info(usage)
			return nil
		}
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	postgresDB := postgresql.New(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
		Debug:      cfg.DBDebug || args.Debug,
	})
	defer postgresDB.Close()

	if args.Migrate {
		commands.MigrateUP(postgresDB)
		log.Info("migrations applied")
		return nil
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	locker := redislock.New(redisDB)

	authenticator, err := auth.New(cfg.PrivateKeyFile)
	if err != nil {
		return err
	}

	app := web.NewApp()

	r := router.NewRouter(app, postgresDB, locker, cfg.Port, authenticator, cfg.AllowedOrigins)

	log.WithField("port", cfg.Port).Info("starting server")

	return r.Init()
}
