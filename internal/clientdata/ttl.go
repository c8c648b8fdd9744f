package clientdata

import "time"

// TTL constants, added to time.Now() when storing to calculate expires_at.
const (
	// TTLBenchmarkRate covers the Selic target, which only moves at Copom meetings
	TTLBenchmarkRate = 6 * time.Hour
)
