package redis

import (
	"fmt"

	"github.com/mcoot/connectn/internal/model"
)

// Key prefix for all connectn data
const keyPrefix = "connectn"

// matchKey returns the Redis key for a MatchRecord
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchIndexKey returns the Redis key for the ZSET of match IDs scored by finish time
func matchIndexKey() string {
	return fmt.Sprintf("%s:idx:matches_by_finish", keyPrefix)
}

// matchExpiryKey returns the Redis key for the ZSET of match IDs scored by record expiry
func matchExpiryKey() string {
	return fmt.Sprintf("%s:idx:matches_by_expiry", keyPrefix)
}
