package deps

import (
	"context"
	"fmt"
	"secureauth/internal/config"
	"secureauth/internal/core/domain/account"
	dl "secureauth/internal/core/domain/logging"
	drl "secureauth/internal/core/domain/rate_limiter"
	dbaccount "secureauth/internal/db/account"
	"secureauth/internal/db/migrations"
	"secureauth/internal/http/handlers/response"
	"secureauth/internal/http/middleware"
	"secureauth/internal/implementations/alerter"
	credentialsgenerator "secureauth/internal/implementations/credentials_generator"
	"secureauth/internal/implementations/email"
	"secureauth/internal/implementations/logging"
	passwordhasher "secureauth/internal/implementations/password_hasher"
	ratelimiter "secureauth/internal/implementations/rate_limiter"
	"secureauth/internal/rabbitmq"
	deliveryfailure "secureauth/internal/rabbitmq/publishers/delivery_failure"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	AccountRepository account.Repository
	RateLimiter       drl.RateLimiter

	MailTransport          email.Transport
	CredentialsGenerator   account.CredentialsGenerator
	PasswordHasher         account.PasswordHasher
	CredentialsSender      account.CredentialsSender
	DeliveryFailureAlerter account.DeliveryFailureAlerter

	HTTPMetrics *middleware.HTTPMetrics
	Flashes     *response.Flashes
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	deps.initMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	flushSentry := deps.initSentry()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.AccountRepository = dbaccount.NewPgxRepository(deps.DB, deps.Config.StoreTimeout)
	deps.RateLimiter = deps.initRateLimiter()

	deps.MailTransport = deps.initMailTransport()
	deps.CredentialsGenerator = credentialsgenerator.New()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.CredentialsSender = email.NewCredentialsSender(deps.MailTransport)

	alerters, closeAlertPublisher := deps.initAlerters()
	deps.DeliveryFailureAlerter = alerter.NewMulti(deps.Logger, alerters...)

	deps.HTTPMetrics = deps.initHTTPMetrics()
	deps.Flashes = response.NewFlashes(deps.Config.FlashCookieName)

	return deps, func() {
		closeFuncs := []func(){
			closeAlertPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}
		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initMigrations() {
	if !deps.Config.RunMigrations {
		deps.Logger.Info(context.Background(), "DB migrations are disabled.")
		return
	}
	if err := migrations.Up(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "DB migrations applied.")
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		deps.Logger.Info(context.Background(), "Redis is not configured, rate limiting is disabled.")
		return func() {}
	}
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRateLimiter() drl.RateLimiter {
	if deps.Redis == nil {
		return ratelimiter.NewDisabled()
	}
	return ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is not configured, queue alerts are disabled.")
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), 1)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (deps *Deps) initMailTransport() email.Transport {
	switch deps.Config.MailTransport {
	case config.MailTransportSES:
		deps.Logger.Info(context.Background(), "Sending email with Amazon SES.")
		return email.NewSES(deps.initAwsConfig(), deps.Config.MailFrom, deps.Config.MailTimeout)
	default:
		deps.Logger.Info(
			context.Background(),
			"Sending email with SMTP.",
			dl.Entry("host", deps.Config.SmtpHost),
			dl.Entry("port", deps.Config.SmtpPort),
		)
		return email.NewSMTP(email.SMTPConfig{
			Host:     deps.Config.SmtpHost,
			Port:     deps.Config.SmtpPort,
			Username: deps.Config.SmtpUsername,
			Password: deps.Config.SmtpPassword,
			From:     deps.Config.MailFrom,
			Timeout:  deps.Config.MailTimeout,
		})
	}
}

func (deps *Deps) initAlerters() ([]account.DeliveryFailureAlerter, func()) {
	alerters := []account.DeliveryFailureAlerter{alerter.NewLog(deps.Logger)}
	if deps.Config.SentryDsn != "" {
		alerters = append(alerters, alerter.NewSentry(sentry.CurrentHub()))
	}
	if deps.Rabbitmq == nil {
		return alerters, func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.DeclareQueue(deps.Config.RabbitmqAlertQueue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	alerters = append(
		alerters,
		deliveryfailure.NewRabbitMQ(deps.Logger, rabbitmqChannel, deps.Config.RabbitmqAlertQueue),
	)
	return alerters, func() {
		deps.Logger.Info(context.Background(), "Shutting down delivery failure publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Delivery failure publisher shut down.")
	}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}

func (deps *Deps) initHTTPMetrics() *middleware.HTTPMetrics {
	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		panic(err)
	}
	return metrics
}
