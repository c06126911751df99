package service

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"unistay/internal/config"
	"unistay/internal/pkg/sms"
	"unistay/internal/queue"
	"unistay/internal/repository"
	"unistay/internal/service/alert"
	"unistay/internal/service/auth"
	"unistay/internal/service/cleanup"
	"unistay/internal/service/dispatch"
	"unistay/internal/service/notification"
	"unistay/internal/service/preference"
	"unistay/internal/service/report"
)

type Services struct {
	Auth         auth.Service
	Preference   preference.Service
	Dispatch     dispatch.Service
	Report       report.Service
	Cleanup      cleanup.Service
	Notification notification.Service
	Alert        alert.Service
}

// Deps carries the optional infrastructure clients. Any of them may be nil.
type Deps struct {
	Redis     *redis.Client
	MinIO     *minio.Client
	Publisher queue.Publisher
}

func NewServices(repos *repository.Repositories, deps Deps, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	policy, err := preference.ParsePolicy(cfg.SMSUnmappedPolicy)
	if err != nil {
		return nil, err
	}

	sender, err := sms.NewSender(sms.Config{
		Provider:   cfg.SMSProvider,
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
		RatePerSec: cfg.SMSRatePerSecond,
		Burst:      cfg.SMSRateBurst,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sms sender: %w", err)
	}

	var archiver cleanup.Archiver
	if deps.MinIO != nil {
		archiver = cleanup.NewMinIOArchiver(deps.MinIO, cfg.MinIOArchiveBucket)
	}

	alertService := alert.NewService(cfg)
	dispatchService := dispatch.NewService(
		repos.Notification,
		repos.SMSLog,
		repos.User,
		sender,
		preference.NewFilter(policy),
		deps.Redis,
		alertService,
		logger.Named("dispatch"),
		dispatch.OptionsFromConfig(cfg),
	)

	return &Services{
		Auth:         auth.NewService(repos.User, cfg.JWTSecret),
		Preference:   preference.NewService(repos.User),
		Dispatch:     dispatchService,
		Report:       report.NewService(repos.SMSLog, deps.Redis, logger.Named("report"), nil),
		Cleanup:      cleanup.NewService(repos.Notification, repos.SMSLog, archiver, logger.Named("cleanup"), nil),
		Notification: notification.NewService(repos.Notification, repos.User, deps.Publisher, logger.Named("notification")),
		Alert:        alertService,
	}, nil
}
