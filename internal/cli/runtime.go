package cli

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-arena-service/internal/app"
	"quiz-arena-service/internal/config"
	"quiz-arena-service/internal/domain"
	"quiz-arena-service/internal/event"
	"quiz-arena-service/internal/infra/memory"
	"quiz-arena-service/internal/infra/postgres"
	redisstore "quiz-arena-service/internal/infra/redis"
)

// runtime holds the assembled service and everything that needs closing.
type runtime struct {
	service   *app.QuizService
	clock     app.TickSource
	bus       *memory.EventBus
	publisher *event.Publisher
	redis     *redis.Client
	pool      *pgxpool.Pool
}

func newRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	rt := &runtime{
		bus: memory.NewEventBus(64),
	}

	if cfg.Redis.Addr != "" {
		rt.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			rt.close()
			return nil, err
		}
		rt.pool = pool
	}

	publisher, err := event.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, 0)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.publisher = publisher

	ids := app.NewIdentifierDeriver(app.Blake2bHasher{})

	var (
		quizzes  app.QuizStore
		ratings  app.RatingStore
		buckets  app.BucketStore
		sequence app.SequenceCounter
	)
	if rt.redis != nil {
		quizzes = memory.NewCachedQuizStore(redisstore.NewQuizStore(rt.redis), config.TTLDuration(cfg.Quiz.CacheTTL, time.Minute))
		ratings = redisstore.NewRatingStore(rt.redis)
		buckets = redisstore.NewBucketStore(rt.redis)
		sequence = redisstore.NewSequence(rt.redis)
		rt.clock = redisstore.NewTickClock(rt.redis)
	} else {
		quizzes = memory.NewQuizStore()
		ratings = memory.NewRatingStore()
		buckets = memory.NewBucketStore()
		sequence = memory.NewSequence()
		rt.clock = memory.NewTickClock(0)
	}

	var ledger app.Ledger
	existential := domain.Amount(cfg.Ledger.ExistentialDeposit)
	if rt.pool != nil {
		ledger = postgres.NewLedger(rt.pool, existential)
	} else {
		genesis := make(map[domain.AccountID]domain.Amount, len(cfg.Ledger.Genesis))
		for account, amount := range cfg.Ledger.Genesis {
			genesis[domain.AccountID(account)] = domain.Amount(amount)
		}
		ledger = memory.NewLedger(existential, genesis)
	}

	rt.service = app.NewQuizService(app.Deps{
		IDs:               ids,
		Quizzes:           quizzes,
		Ratings:           app.NewRatingLedger(ratings),
		Scheduler:         app.NewDeletionScheduler(ids, buckets, cfg.Quiz.DeletionDelay),
		Sequence:          sequence,
		Ledger:            ledger,
		Events:            event.Fanout{rt.bus, rt.publisher, event.LogSink{Logf: log.Printf}},
		Clock:             rt.clock,
		TokensPerQuestion: domain.Amount(cfg.Quiz.TokensPerQuestion),
	})
	return rt, nil
}

func (rt *runtime) close() {
	if rt.publisher != nil {
		_ = rt.publisher.Close()
	}
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
}
