package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"quiz-arena-service/internal/domain"
)

func TestBucketStoreLoadAndTrim(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewBucketStore(newClient(mr))
	bucket := domain.ID{0x10}

	for _, id := range []domain.ID{{1}, {2}, {1}} {
		if err := store.Append(ctx, bucket, id); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	ids, err := store.Load(ctx, bucket)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 3 || ids[0] != (domain.ID{1}) || ids[1] != (domain.ID{2}) || ids[2] != (domain.ID{1}) {
		t.Fatalf("unexpected bucket contents %v", ids)
	}

	if err := store.Trim(ctx, bucket, 2); err != nil {
		t.Fatalf("trim: %v", err)
	}
	ids, err = store.Load(ctx, bucket)
	if err != nil || len(ids) != 1 || ids[0] != (domain.ID{1}) {
		t.Fatalf("after trim = (%v, %v), want the last entry", ids, err)
	}

	if err := store.Trim(ctx, bucket, 1); err != nil {
		t.Fatalf("trim: %v", err)
	}
	if ids, err := store.Load(ctx, bucket); err != nil || len(ids) != 0 {
		t.Fatalf("after full trim = (%v, %v), want empty", ids, err)
	}
	if mr.Exists(bucketKey(bucket)) {
		t.Fatalf("expected bucket key removed")
	}
}
