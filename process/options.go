package process

// ProcessOption configures a Process at construction, following the
// teacher's functional-options-over-an-interface pattern
// (eventloop.LoopOption / options.go).
type ProcessOption interface {
	applyProcess(*Process)
}

type processOptionFunc func(*Process)

func (f processOptionFunc) applyProcess(p *Process) { f(p) }

// WithLogger overrides the structured logger a Process uses for its
// start/complete/stop/cancel/update/abort events. Passing nil
// restores the package default (see SetDefaultLogger).
func WithLogger(l *Logger) ProcessOption {
	return processOptionFunc(func(p *Process) {
		if l == nil {
			l = getDefaultLogger()
		}
		p.logger = l
	})
}
