package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-arena-service/internal/domain"
)

// BucketStore keeps deletion buckets as Redis lists: RPUSH quiz:bucket:{bucket} {quizID}
type BucketStore struct {
	client *redis.Client
}

func NewBucketStore(client *redis.Client) *BucketStore {
	return &BucketStore{client: client}
}

func (s *BucketStore) Append(ctx context.Context, bucket, quizID domain.ID) error {
	return s.client.RPush(ctx, bucketKey(bucket), quizID.String()).Err()
}

func (s *BucketStore) Load(ctx context.Context, bucket domain.ID) ([]domain.ID, error) {
	raw, err := s.client.LRange(ctx, bucketKey(bucket), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load bucket: %w", err)
	}
	ids := make([]domain.ID, 0, len(raw))
	for _, member := range raw {
		id, err := domain.ParseID(member)
		if err != nil {
			return ids, fmt.Errorf("bucket %s: %w", bucket, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Trim keeps the list tail from index n; Redis drops the key once it is empty.
func (s *BucketStore) Trim(ctx context.Context, bucket domain.ID, n int) error {
	if err := s.client.LTrim(ctx, bucketKey(bucket), int64(n), -1).Err(); err != nil {
		return fmt.Errorf("trim bucket: %w", err)
	}
	return nil
}

func bucketKey(bucket domain.ID) string {
	return "quiz:bucket:" + bucket.String()
}
