package cli

import (
	"time"

	"github.com/seva/internal/config"
	"github.com/seva/internal/jobs"
	"github.com/seva/internal/objectstore"
	"github.com/seva/internal/push"
	"github.com/seva/internal/repository"
	"github.com/seva/internal/service"
	"github.com/seva/internal/startup"
	"github.com/spf13/cobra"
)

// NewCleanupAlankaraCommand deletes expired alankara photos once.
func NewCleanupAlankaraCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-alankara",
		Short: "Delete alankara photos older than the configured max age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			pool, err := openPool(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			svc := service.NewAlankaraService(repository.NewAlankaraRepository(pool),
				objectstore.New(cfg.Storage.UploadDir), nil, cfg.Jobs.AlankaraMaxAge)
			return runJob(cmd, rootOpts, jobs.NewAlankaraCleanup(svc))
		},
	}
}

// NewRemindEventsCommand pushes today's event reminders once.
func NewRemindEventsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remind-events",
		Short: "Push reminders for today's events that have not been announced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			pool, err := openPool(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			rdb := startup.ConnectRedisWithRetry(cfg.Redis.URL, cliConnectWait)
			defer rdb.Close()
			pusher := push.NewService(push.NewRedisStore(rdb.Raw()),
				cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subscriber)
			return runJob(cmd, rootOpts, jobs.NewEventReminder(repository.NewEventRepository(pool), pusher))
		},
	}
}

func runJob(cmd *cobra.Command, rootOpts *RootOptions, job jobs.Job) error {
	start := time.Now()
	n, err := job.Run(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), rootOpts.Format, map[string]any{
		"job":      job.Name(),
		"affected": n,
		"took":     time.Since(start).Round(time.Millisecond).String(),
	})
}
