package icons

// Metrics — события кеша списка источников.
type Metrics interface {
	Hit()
	Miss()
	Invalidate()
}

type NoopMetrics struct{}

func (NoopMetrics) Hit()        {}
func (NoopMetrics) Miss()       {}
func (NoopMetrics) Invalidate() {}
