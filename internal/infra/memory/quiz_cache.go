package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-arena-service/internal/app"
	"quiz-arena-service/internal/domain"
)

// CachedQuizStore caches quiz reads with TTL in front of another store to
// avoid repeated backend hits. Solutions are never cached. Writes go through
// and invalidate the cached entry.
type CachedQuizStore struct {
	next  app.QuizStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu    sync.RWMutex
	rndMu sync.Mutex
	cache map[domain.ID]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewCachedQuizStore(next app.QuizStore, ttl time.Duration) *CachedQuizStore {
	return &CachedQuizStore{
		next:  next,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[domain.ID]cachedQuiz),
	}
}

func (c *CachedQuizStore) CreateQuiz(ctx context.Context, id domain.ID, quiz domain.Quiz, solution domain.Solution) error {
	c.invalidate(id)
	return c.next.CreateQuiz(ctx, id, quiz, solution)
}

func (c *CachedQuizStore) GetQuiz(ctx context.Context, id domain.ID) (domain.Quiz, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.quiz, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(id.String(), func() (interface{}, error) {
		quiz, err := c.next.GetQuiz(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.cache[id] = cachedQuiz{
			quiz:      quiz,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *CachedQuizStore) GetSolution(ctx context.Context, id domain.ID) (domain.Solution, error) {
	return c.next.GetSolution(ctx, id)
}

func (c *CachedQuizStore) DeleteQuiz(ctx context.Context, id domain.ID) (bool, error) {
	removed, err := c.next.DeleteQuiz(ctx, id)
	c.invalidate(id)
	return removed, err
}

func (c *CachedQuizStore) invalidate(id domain.ID) {
	c.mu.Lock()
	delete(c.cache, id)
	c.mu.Unlock()
}

func (c *CachedQuizStore) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
