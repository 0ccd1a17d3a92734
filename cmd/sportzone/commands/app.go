package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlexG0311/sportzone/internal/config"
	"github.com/AlexG0311/sportzone/internal/logging"
	"github.com/AlexG0311/sportzone/internal/media"
	"github.com/AlexG0311/sportzone/internal/session"
	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// app carries the services a command needs. It is built once per invocation
// from the configuration and closed when the command returns.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *sportzone.Client
	holder   *session.Holder
	uploader *media.CloudinaryUploader
	closers  []func() error
}

func newApp(ctx context.Context, opts *globalOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, alert(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Fix %s or the SPORTZONE_* environment variables", opts.configPath)},
		)
	}
	if opts.profile != "" {
		cfg.Session.Profile = opts.profile
		if err := cfg.Validate(); err != nil {
			return nil, alert("invalid --profile", err.Error(), nil)
		}
	}

	level := ""
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	a.client, err = sportzone.NewClient(cfg.API.BaseURL,
		sportzone.WithTimeout(cfg.API.Timeout),
		sportzone.WithLogger(logger),
	)
	if err != nil {
		a.close()
		return nil, alert("invalid configuration", err.Error(), nil)
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	a.holder = session.NewHolder(store)
	if err := a.holder.Restore(ctx); err != nil {
		logger.Warn("ignoring unreadable session", zap.Error(err))
	}

	a.uploader, err = media.NewCloudinaryUploader(media.CloudinaryConfig{
		CloudName:    cfg.Media.CloudName,
		UploadPreset: cfg.Media.UploadPreset,
		Folder:       cfg.Media.Folder,
		APIKey:       cfg.Media.APIKey,
		APISecret:    cfg.Media.APISecret,
		UploadPrefix: cfg.Media.UploadPrefix,
	})
	if err != nil {
		a.close()
		return nil, alert("invalid media configuration", err.Error(), nil)
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) (session.Store, error) {
	if a.cfg.Session.Store != config.StoreRedis {
		return session.NewMemoryStore(), nil
	}

	store, err := session.NewRedisStore(&redis.Options{Addr: a.cfg.Session.RedisAddr}, a.cfg.Session.Profile, a.cfg.Session.TTL)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, alertWithContext(
			"session store unavailable",
			"Could not reach the Redis server that keeps your login.",
			map[string]string{"redis_addr": a.cfg.Session.RedisAddr, "error": err.Error()},
			[]string{
				"Start Redis at the configured address",
				"Set session.store: memory in sportzone.yml",
			},
		)
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// withApp builds the app for cmd, runs fn and converts its error into a
// printed alert naming action.
func withApp(cmd *cobra.Command, opts *globalOptions, action string, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, opts)
	if err == nil {
		defer a.close()
		err = fn(ctx, a)
	}
	if err == nil {
		return nil
	}

	var shown *shownError
	if errors.As(err, &shown) {
		return err
	}
	return fail(action, err)
}

// persistentSession reports whether a login survives this process.
func (a *app) persistentSession() bool {
	return a.cfg.Session.Store == config.StoreRedis
}
