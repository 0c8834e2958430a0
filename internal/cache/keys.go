package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
	rankTableKey  = "ranks:all"
	shopCatalogKey = "shop:catalog"
)

const (
	UserTTL      = 5 * time.Minute
	RankTableTTL = time.Hour
	ShopTTL      = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func RankTableKey() string {
	return rankTableKey
}

func ShopCatalogKey() string {
	return shopCatalogKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateUser drops the cached profile after any XP/gold mutation.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateShop drops the cached shop catalog (e.g. after seeding).
func InvalidateShop(ctx context.Context) {
	Invalidate(ctx, shopCatalogKey)
}
