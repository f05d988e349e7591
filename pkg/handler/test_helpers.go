package handler

import (
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/oracle/mock"
	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// setupTestManager creates a complete conversation manager backed by
// miniredis and a mock oracle
func setupTestManager(mr *miniredis.Miniredis) (*conversation.Manager, *mock.Oracle) {
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := session.NewRedisStore(client, session.RedisStoreConfig{})
	o := mock.New()
	machine := screening.NewMachine(screening.DefaultScript(), o)

	return conversation.NewManager(store, o, machine, nil), o
}
