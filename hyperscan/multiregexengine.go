package hyperscan

import (
	"formsink/upload"

	hs "github.com/flier/gohs/hyperscan"
)

// EngineFactory implements the multiRegexEngineFactory interface.
type EngineFactory struct {
	cache DbCache
}

// Engine implements the multiRegexEngine interface.
type Engine struct {
	// Hyperscan's compiled database of regexes
	db hs.BlockDatabase

	// Pre-allocated memory space that Hyperscan needs during evaluation
	scratch *hs.Scratch
}

// NewMultiRegexEngineFactory creates an upload.MultiRegexEngineFactory.
// A nil cache means every engine compiles its signature database from scratch.
func NewMultiRegexEngineFactory(cache DbCache) upload.MultiRegexEngineFactory {
	return &EngineFactory{cache: cache}
}

// NewMultiRegexEngine creates an upload.MultiRegexEngine.
func (f *EngineFactory) NewMultiRegexEngine(mm []upload.MultiRegexEnginePattern) (m upload.MultiRegexEngine, err error) {
	h := &Engine{}

	patterns := []*hs.Pattern{}
	for _, p := range mm {
		pattern := hs.NewPattern(p.Expr, 0)
		pattern.Id = p.ID

		// SingleMatch makes Hyperscan only return one match per regex. So if a regex is found multiple time, still only one match is recorded.
		// PrefilterMode gives broader regex compatibility, at the cost of possible false positives.
		pattern.Flags = hs.SingleMatch | hs.PrefilterMode

		patterns = append(patterns, pattern)
	}

	// Deserializing a previously built database is much cheaper than
	// compiling the signatures again. Every load yields a fresh instance,
	// so the engine still owns and closes its database.
	var cacheID string
	if f.cache != nil {
		cacheID = f.cache.cacheID(patterns)
		h.db = f.cache.loadFromCache(cacheID)
	}

	if h.db == nil {
		h.db, err = hs.NewBlockDatabase(patterns...)
		if err != nil {
			return
		}

		if f.cache != nil {
			f.cache.saveToCache(cacheID, h.db)
		}
	}

	h.scratch, err = hs.NewScratch(h.db)
	if err != nil {
		h.db.Close()
		return
	}

	m = h
	return
}

// Scan scans the given input for all expressions that this engine was initialized with.
func (h *Engine) Scan(input []byte) (matches []upload.MultiRegexEngineMatch, err error) {
	matches = []upload.MultiRegexEngineMatch{}
	handler := func(id uint, from, to uint64, flags uint, context interface{}) error {
		m := upload.MultiRegexEngineMatch{
			ID:     int(id),
			EndPos: int(to),
		}
		matches = append(matches, m)
		return nil
	}

	err = h.db.Scan(input, h.scratch, handler, nil)
	return
}

// Close frees the scratch space and the compiled database.
func (h *Engine) Close() {
	if h.scratch != nil {
		h.scratch.Free()
		h.scratch = nil
	}
	if h.db != nil {
		h.db.Close()
		h.db = nil
	}
}
