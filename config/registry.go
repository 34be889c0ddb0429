package config

import (
	"fmt"

	"formsink/handlers"
	"formsink/upload"
)

// Registry maps handler names, as they appear in settings, to handler factories.
type Registry struct {
	factories map[string]upload.HandlerFactory
}

// NewRegistry creates a Registry with the built-in handlers pre-registered.
// The regex engine factory is used by the content scan handler.
func NewRegistry(mref upload.MultiRegexEngineFactory) *Registry {
	r := &Registry{factories: make(map[string]upload.HandlerFactory)}

	r.Register("memory", func(s upload.Settings) upload.Handler {
		return handlers.NewMemoryHandler(s.MemoryThreshold)
	})
	r.Register("tempfile", func(s upload.Settings) upload.Handler {
		return handlers.NewTempFileHandler(s.TempDir)
	})
	r.Register("quota", func(s upload.Settings) upload.Handler {
		return handlers.NewQuotaHandler(s.Quota)
	})
	r.Register("contentscan", func(s upload.Settings) upload.Handler {
		return handlers.NewContentScanHandler(mref, s.ScanSignatures)
	})

	return r
}

// Register adds or replaces a handler factory under the given name.
func (r *Registry) Register(name string, f upload.HandlerFactory) {
	r.factories[name] = f
}

// Validate reports whether every handler name in the settings is registered.
func (r *Registry) Validate(s upload.Settings) error {
	for _, name := range s.Handlers {
		if _, ok := r.factories[name]; !ok {
			return fmt.Errorf("unknown upload handler %q", name)
		}
	}
	return nil
}

// ChainBuilder returns a builder that creates a fresh request-scoped handler
// chain from settings. Names that fail Validate are skipped.
func (r *Registry) ChainBuilder() upload.ChainBuilder {
	return func(s upload.Settings) *upload.HandlerChain {
		hh := make([]upload.Handler, 0, len(s.Handlers))
		for _, name := range s.Handlers {
			f, ok := r.factories[name]
			if !ok {
				continue
			}
			hh = append(hh, f(s))
		}
		return upload.NewHandlerChain(hh...)
	}
}
