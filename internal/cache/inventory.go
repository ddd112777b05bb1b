package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PublicPostsKey      = "posts:public"
	PublicPostsTagKey   = "posts:public:tag:%s"
	UserRollupKeyPrefix = "rollup:user:%d"
)

const (
	PublicListTTL = 30 * time.Second
	RollupTTL     = time.Minute
)

func PublicPostsTag(tag string) string {
	return fmt.Sprintf(PublicPostsTagKey, tag)
}

func UserRollupKey(userID uint) string {
	return fmt.Sprintf(UserRollupKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePublicPosts drops the cached approved-posts listing, including
// every per-tag variant.
func InvalidatePublicPosts(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, PublicPostsKey)
	iter := client.Scan(ctx, 0, fmt.Sprintf(PublicPostsTagKey, "*"), 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
