package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyActivity returns the cache key for one activity's detail.
func (kb *KeyBuilder) KeyActivity(activityID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyActivityByID, activityID))
}

// KeyActivityListPage returns the cache key for a listing page. The caller
// supplies a stable hash of the filter parameters.
func (kb *KeyBuilder) KeyActivityListPage(filterHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyActivityList, filterHash))
}

// KeyUserStatistics returns the cache key for a user's statistics.
func (kb *KeyBuilder) KeyUserStatistics(userID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyUserStats, userID))
}

// KeyUserRegistration returns the cache key hinting that a user holds a
// registration for an activity.
func (kb *KeyBuilder) KeyUserRegistration(userID, activityID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyUserRegistered, userID, activityID))
}
