package redis

// submitKey returns the Redis key guarding an auth form submission
func (s *Storage) submitKey(token string) string {
	return s.prefix + ":submit:" + token
}
