package types

import "github.com/m-mizutani/goerr/v2"

// RateLimitGroup identifies a tier of RingCentral API operations sharing one
// quota window. The platform reports the group of each request in the
// X-Rate-Limit-Group response header.
type RateLimitGroup string

const (
	RateLimitLight  RateLimitGroup = "light"
	RateLimitMedium RateLimitGroup = "medium"
	RateLimitHeavy  RateLimitGroup = "heavy"
)

// String returns the group name as sent by the platform
func (x RateLimitGroup) String() string {
	return string(x)
}

// Validate checks if the RateLimitGroup is usable as a request tag
func (x RateLimitGroup) Validate() error {
	if x == "" {
		return goerr.New("rate limit group is empty")
	}
	return nil
}
