package metrics

import (
	"context"
)

// Observer refreshes gauges that reflect stored state rather than events,
// such as the age of the latest status. Observers are run by the observer
// component on every tick.
type Observer interface {
	Observe(ctx context.Context, metrics *Collector)
}
