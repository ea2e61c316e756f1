/*
	Tripcal
	Copyright (c) 2024 Tripcal Authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package places

import (
	"net/http"
	"time"
)

// RateLimit describes a rate limit for outgoing lookup requests.
type RateLimit struct {
	RequestsPerHour int `json:"requests_per_hour,omitempty"`
	BurstSize       int `json:"burst_size,omitempty"`
}

const minInterval = 100 * time.Millisecond

// RoundTripper adds rate limiting to rt based on the rate limiting
// policy. A zero policy returns rt unchanged.
func (rl RateLimit) RoundTripper(rt http.RoundTripper) http.RoundTripper {
	if rl.RequestsPerHour <= 0 {
		return rt
	}

	secondsBetweenReqs := 60.0 / (float64(rl.RequestsPerHour) / 60.0)
	millisBetweenReqs := secondsBetweenReqs * 1000.0
	reqInterval := time.Duration(millisBetweenReqs) * time.Millisecond
	if reqInterval < minInterval {
		reqInterval = minInterval
	}

	burst := rl.BurstSize
	if burst < 1 {
		burst = 1
	}

	token := make(chan struct{}, burst)
	for i := 0; i < cap(token); i++ {
		token <- struct{}{}
	}
	ticker := time.NewTicker(reqInterval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case token <- struct{}{}:
				default: // bucket full, drop the tick
				}
			case <-done:
				return
			}
		}
	}()

	return &rateLimitedRoundTripper{
		RoundTripper: rt,
		token:        token,
		done:         done,
	}
}

type rateLimitedRoundTripper struct {
	http.RoundTripper
	token <-chan struct{}
	done  chan struct{}
}

func (rt *rateLimitedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	<-rt.token
	return rt.RoundTripper.RoundTrip(req)
}

// Close stops the refill goroutine. Requests already holding a token
// proceed; new requests block once the bucket drains. Close at most
// once.
func (rt *rateLimitedRoundTripper) Close() error {
	close(rt.done)
	return nil
}
