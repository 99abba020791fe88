package redis

import (
	"fmt"

	"github.com/mcoot/gamevault/internal/model"
)

// Key prefix for all catalog data
const keyPrefix = "gamevault"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a CustomGame
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesByCreatedKey returns the Redis key for the ZSET of game ids scored by creation time
func gamesByCreatedKey() string {
	return fmt.Sprintf("%s:idx:games_by_created", keyPrefix)
}
