// Package health checks that the upstream services answer at all before
// a run starts. Retrying belongs here, at startup; per-call processing is
// strictly single-attempt.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// WaitReady probes each base URL with a HEAD request under exponential
// backoff. Any HTTP response counts as reachable; auth errors are
// expected for probes without credentials.
func WaitReady(ctx context.Context, log *logrus.Entry, client *http.Client, urls ...string) error {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	for _, u := range urls {
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 30 * time.Second

		op := func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			resp.Body.Close()
			return nil
		}
		if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
			return fmt.Errorf("service %s unreachable: %w", u, err)
		}
		log.WithField("url", u).Info("service reachable")
	}
	return nil
}
