package ringcentral

import (
	"net/http"

	"github.com/secmon-lab/ringsync/pkg/domain/types"
)

// Export internals for white-box tests

var (
	ClassifyFault = classifyFault
	DiffMembers   = diffMembers
	MergeUser     = mergeUser
)

func (x *RateLimiter) GroupWindowCount(name string) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	g, ok := x.groups[types.RateLimitGroup(name)]
	if !ok {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.windows)
}

func (x *Client) RecordRateLimit(header http.Header) {
	x.recordRateLimit(header)
}

func (x *Client) Limiter() *RateLimiter {
	return x.limiter
}
