package pantry

import (
	"context"
	"time"
)

// RunRefresher refreshes every container once immediately and then on each
// tick until ctx is done, so stored freshness tracks the calendar even when
// nobody opens a container. A non-positive interval refreshes once.
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) {
	s.refreshLogged()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshLogged()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) refreshLogged() {
	changed, err := s.RefreshAll()
	if err != nil {
		s.logger.Error("scheduled refresh failed", "error", err)
		return
	}
	s.logger.Info("scheduled refresh complete", "changed", changed)
}
