package integrationtesting

import (
	"io"
	"regexp"
	"strings"

	"formsink/upload"
)

type mockHeader struct{ k, v string }

func (h *mockHeader) Key() string   { return h.k }
func (h *mockHeader) Value() string { return h.v }

type mockIngestionRequest struct {
	txid    string
	headers []upload.HeaderPair
	body    *strings.Reader
}

func (r *mockIngestionRequest) Headers() []upload.HeaderPair { return r.headers }
func (r *mockIngestionRequest) BodyReader() io.Reader        { return r.body }
func (r *mockIngestionRequest) TransactionID() string        { return r.txid }

type recordingResultsLogger struct {
	headerTooLarge int
	uploadAborted  int
	bodyParseError int
	lastTearDown   bool
}

func (l *recordingResultsLogger) HeaderTooLarge(request upload.Request, limit int) {
	l.headerTooLarge++
}

func (l *recordingResultsLogger) UploadAborted(request upload.Request, tearDown bool) {
	l.uploadAborted++
	l.lastTearDown = tearDown
}

func (l *recordingResultsLogger) BodyParseError(request upload.Request, err error) {
	l.bodyParseError++
}

// regexpEngineFactory stands in for the Hyperscan engine so the end-to-end
// tests do not need the native library.
type regexpEngineFactory struct{}

type regexpEngine struct {
	patterns []*regexp.Regexp
	ids      []int
}

func (f *regexpEngineFactory) NewMultiRegexEngine(mm []upload.MultiRegexEnginePattern) (upload.MultiRegexEngine, error) {
	m := &regexpEngine{}
	for _, p := range mm {
		r, err := regexp.Compile(p.Expr)
		if err != nil {
			return nil, err
		}
		m.patterns = append(m.patterns, r)
		m.ids = append(m.ids, p.ID)
	}
	return m, nil
}

func (m *regexpEngine) Scan(input []byte) (matches []upload.MultiRegexEngineMatch, err error) {
	for i, p := range m.patterns {
		if loc := p.FindIndex(input); loc != nil {
			matches = append(matches, upload.MultiRegexEngineMatch{ID: m.ids[i], EndPos: loc[1]})
		}
	}
	return
}

func (m *regexpEngine) Close() {}
