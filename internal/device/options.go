package device

import (
	"log/slog"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
)

// RelayHook is called whenever the relay watcher switches the relays.
type RelayHook func(at relaybox.Instant, states RelayStates)

// Option configures Run and WatchOutput.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	relayHooks []RelayHook
	processor  []buttons.Option[ButtonFlags]
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithLogger sets the logger of the box tasks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
			c.processor = append(c.processor, buttons.WithLogger[ButtonFlags](l))
		}
	}
}

// WithRelayHook registers a hook for relay changes.
func WithRelayHook(h RelayHook) Option {
	return func(c *config) {
		if h != nil {
			c.relayHooks = append(c.relayHooks, h)
		}
	}
}

// WithButtonEventHook registers a hook for every button event.
func WithButtonEventHook(h buttons.EventHook[ButtonFlags]) Option {
	return func(c *config) {
		c.processor = append(c.processor, buttons.WithEventHook(h))
	}
}
