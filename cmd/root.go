package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/config"
	"github.com/abhisek/lessonloop/internal/learning"
	"github.com/abhisek/lessonloop/internal/lock"
	"github.com/abhisek/lessonloop/internal/logger"
	"github.com/abhisek/lessonloop/internal/store"
	"github.com/abhisek/lessonloop/internal/unlock"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lessonloop",
	Short: "Bite-sized daily lessons with spaced review",
	Long: "LessonLoop serves a fixed catalog of short lessons one card at a time, " +
		"brings missed questions back for review and opens new topics over the days.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if db, _ := cmd.Flags().GetString("db"); db != "" {
			c.Database.DSN = db
		}
		l, err := logger.New(c.Log.Mode, c.Log.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cfg, log = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, "")
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Database DSN or SQLite file (overrides database.dsn)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(learnerCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore connects to the configured database. An empty SQLite DSN
// resolves to the per-user data directory.
func openStore(ctx context.Context) (*store.Store, error) {
	dsn := cfg.Database.DSN
	if cfg.Database.Driver == store.DriverSQLite {
		if dsn == "" {
			p, err := store.DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve database path: %w", err)
			}
			dsn = p
		} else if err := store.EnsureDir(dsn); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	s, err := store.Open(ctx, cfg.Database.Driver, dsn)
	if err != nil {
		return nil, err
	}
	log.Debug("database opened", "driver", cfg.Database.Driver)
	return s, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// newLocker builds the configured per-learner lock. The returned func
// releases any connection it holds.
func newLocker(ctx context.Context, l *logger.Logger) (lock.Locker, func(), error) {
	if cfg.Lock.Backend != "redis" {
		return lock.NewKeyedMutex(), func() {}, nil
	}
	rdb, err := lock.DialRedis(ctx, cfg.Lock.RedisAddr, cfg.Lock.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	locker := lock.NewRedisLocker(rdb, lock.RedisOptions{
		TTL:        cfg.Lock.TTL,
		RetryDelay: cfg.Lock.RetryDelay,
	}, l)
	return locker, func() { _ = rdb.Close() }, nil
}

// newService wires the learning service to the store, the catalog and the
// configured lock, time zone and unlock policy.
func newService(ctx context.Context, st *store.Store, l *logger.Logger) (*learning.Service, func(), error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Unlock.Location()
	if err != nil {
		return nil, nil, err
	}
	locker, release, err := newLocker(ctx, l)
	if err != nil {
		return nil, nil, err
	}

	opts := []learning.Option{
		learning.WithLocker(locker),
		learning.WithLocation(loc),
		learning.WithLogger(l),
	}
	if cfg.Unlock.Policy != "" {
		p, err := unlock.ParsePolicy(cfg.Unlock.Policy)
		if err != nil {
			release()
			return nil, nil, err
		}
		opts = append(opts, learning.WithPolicy(p))
	}

	svc, err := learning.New(cat, st.StateRepo(), opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return svc, release, nil
}
