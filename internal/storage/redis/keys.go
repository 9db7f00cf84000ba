package redis

import (
	"fmt"

	"github.com/pixelquest/accounts/internal/model"
)

// Key prefix for all account data
const keyPrefix = "pqacct"

// userKey returns the Redis key for a User record
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// externalIDIndexKey returns the Redis key for the external uid -> user id index
func externalIDIndexKey(externalID string) string {
	return fmt.Sprintf("%s:idx:external_id:%s", keyPrefix, externalID)
}

// usersIndexKey returns the Redis key for the SET of all user keys
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}
