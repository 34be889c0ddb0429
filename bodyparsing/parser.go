package bodyparsing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"formsink/sanitize"
	"formsink/upload"
)

// NewMultipartParser creates an upload.BodyParser for multipart request bodies.
func NewMultipartParser(settings upload.Settings) upload.BodyParser {
	return &multipartParserImpl{
		settings: settings,
	}
}

type multipartParserImpl struct {
	settings upload.Settings
}

func (p *multipartParserImpl) Settings() upload.Settings {
	return p.settings
}

// Parse drives the whole pipeline for one request: bounded reading, boundary
// scanning, header lexing, transfer decoding, handler dispatch and result
// assembly. Parts arrive at handlers strictly in body order; part N+1's
// headers are never touched before part N was completed or interrupted.
func (p *multipartParserImpl) Parse(logger zerolog.Logger, req upload.Request, chain *upload.HandlerChain) (result *upload.Result, err error) {
	result = upload.NewResult()

	contentLength, contentType, err := requestEnvelope(req)
	if err != nil {
		return
	}

	mediatype, mediaTypeParams, _ := mime.ParseMediaType(contentType)
	if mediatype != "multipart/form-data" && mediatype != "multipart/related" {
		err = fmt.Errorf("%w: %q", upload.ErrInvalidContentType, contentType)
		return
	}

	boundary := mediaTypeParams["boundary"]
	if !isValidBoundary(boundary) {
		err = &upload.BoundaryError{Boundary: boundary}
		return
	}

	// A zero content length is valid per HTTP semantics: zero parts.
	if contentLength == 0 {
		return
	}

	related := mediatype == "multipart/related"
	reader := newBoundedReader(req.BodyReader(), contentLength)
	scanner := newBoundaryScanner(reader, boundary, chain.ChunkSize())
	lexer := &headerLexer{maxHeaderBytes: p.settings.MaxHeaderBytes}

	for {
		var found bool
		found, err = scanner.nextPart()
		if err != nil {
			// Transport failure while seeking a boundary.
			chain.UploadInterrupted()
			return
		}
		if !found {
			// Terminal boundary seen, or truncated input: whatever parts
			// were fully delimited stand.
			chain.UploadComplete()
			return
		}

		var hdrs *partHeaders
		hdrs, err = lexer.parse(scanner)
		if err != nil {
			if err == io.EOF {
				// Stream ended inside a header block.
				err = nil
				chain.UploadInterrupted()
				return
			}
			chain.UploadInterrupted()
			if errors.Is(err, upload.ErrHeaderTooLarge) {
				result = discardResult(result)
			}
			return
		}

		err = p.consumePart(logger, scanner, chain, hdrs, related, contentLength, result)
		if err != nil {
			if errors.Is(err, upload.ErrStopUpload) {
				chain.UploadInterrupted()
				if !errors.Is(err, upload.ErrConnectionTearDown) {
					// Drain so the connection is left in a consistent state.
					io.Copy(io.Discard, reader)
				}
				return
			}

			if err == errTruncated {
				err = nil
				chain.UploadInterrupted()
				return
			}

			chain.UploadInterrupted()
			if errors.Is(err, upload.ErrTransferDecode) {
				result = discardResult(result)
			}
			return
		}
	}
}

func (p *multipartParserImpl) consumePart(logger zerolog.Logger, scanner *boundaryScanner, chain *upload.HandlerChain, hdrs *partHeaders, related bool, contentLength int64, result *upload.Result) (err error) {
	if related {
		// multipart/related parts carry no form-data disposition. Their raw
		// bytes flow through the handler chain undecoded, keyed by Content-ID
		// when one is present.
		meta := upload.PartMeta{
			FieldName:        contentID(hdrs),
			ContentType:      hdrs.contentType,
			ContentLength:    contentLength,
			Charset:          hdrs.charset,
			ContentTypeExtra: hdrs.contentTypeExtra,
		}
		return p.consumeFilePart(scanner, chain, meta, identityDecoder{}, result)
	}

	if hdrs.disposition != "form-data" || hdrs.name == "" {
		// Nothing can consume an unnamed part.
		logger.Debug().Msg("Skipping part without form-data name")
		return drainPart(scanner)
	}

	if hdrs.hasFileName {
		fileName, serr := sanitize.FileName(hdrs.fileName)
		if serr != nil {
			// No usable filename: the part is not a file upload.
			logger.Debug().Str("field", hdrs.name).Msg("Skipping file part with unusable filename")
			return drainPart(scanner)
		}

		meta := upload.PartMeta{
			FieldName:        hdrs.name,
			FileName:         fileName,
			ContentType:      hdrs.contentType,
			ContentLength:    contentLength,
			Charset:          hdrs.charset,
			ContentTypeExtra: hdrs.contentTypeExtra,
		}
		return p.consumeFilePart(scanner, chain, meta, newTransferDecoder(hdrs.transferEncoding), result)
	}

	return consumeFieldPart(scanner, hdrs, result)
}

// consumeFieldPart collects a non-file form field into the value map.
func consumeFieldPart(scanner *boundaryScanner, hdrs *partHeaders, result *upload.Result) (err error) {
	decoder := newTransferDecoder(hdrs.transferEncoding)

	var buf bytes.Buffer
	for {
		data, last, rerr := scanner.readBodyChunk()
		if rerr != nil {
			return rerr
		}

		out, derr := decoder.decode(data)
		if derr != nil {
			return derr
		}
		buf.Write(out)

		if last {
			if _, derr = decoder.flush(); derr != nil {
				return derr
			}
			result.Values.Add(hdrs.name, buf.String())
			return
		}
	}
}

// consumeFilePart streams a file-bearing part through the handler chain.
func (p *multipartParserImpl) consumeFilePart(scanner *boundaryScanner, chain *upload.HandlerChain, meta upload.PartMeta, decoder transferDecoder, result *upload.Result) (err error) {
	ctl, err := chain.NewFile(meta)
	if err != nil {
		return
	}
	switch ctl {
	case upload.SkipPart:
		return drainPart(scanner)
	case upload.AbortDrain:
		return upload.ErrStopUpload
	case upload.AbortTearDown:
		return upload.ErrConnectionTearDown
	}

	var size int64
	for {
		data, last, rerr := scanner.readBodyChunk()
		if rerr != nil {
			return rerr
		}

		out, derr := decoder.decode(data)
		if derr != nil {
			return derr
		}

		if len(out) > 0 {
			ctl, err = chain.ReceiveDataChunk(out)
			if err != nil {
				return
			}
			switch ctl {
			case upload.SkipPart:
				if last {
					return nil
				}
				return drainPart(scanner)
			case upload.AbortDrain:
				return upload.ErrStopUpload
			case upload.AbortTearDown:
				return upload.ErrConnectionTearDown
			}
			size += int64(len(out))
		}

		if last {
			if _, derr = decoder.flush(); derr != nil {
				return derr
			}

			var file upload.UploadedFile
			file, err = chain.FileComplete(size)
			if err != nil {
				return
			}
			if file != nil {
				result.Files.Add(meta.FieldName, file)
			}
			return
		}
	}
}

// drainPart discards the rest of the current part's body.
func drainPart(scanner *boundaryScanner) (err error) {
	for {
		_, last, rerr := scanner.readBodyChunk()
		if rerr != nil {
			return rerr
		}
		if last {
			return
		}
	}
}

// discardResult closes any files collected so far and replaces the result
// with empty maps, for errors that reject the whole request.
func discardResult(result *upload.Result) *upload.Result {
	result.Files.Close()
	return upload.NewResult()
}

// requestEnvelope extracts the declared content length and content type.
// A non-numeric Content-Length is treated as zero; a negative one is an error.
func requestEnvelope(req upload.Request) (contentLength int64, contentType string, err error) {
	for _, h := range req.Headers() {
		k := h.Key()
		v := h.Value()

		if strings.EqualFold("content-length", k) {
			n, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if perr != nil {
				n = 0
			}
			if n < 0 {
				err = fmt.Errorf("%w: %v", upload.ErrInvalidContentLength, n)
				return
			}
			contentLength = n
		}

		if strings.EqualFold("content-type", k) {
			contentType = v
		}
	}

	return
}

// contentID returns the part's Content-ID with any angle brackets removed.
func contentID(hdrs *partHeaders) string {
	for k, v := range hdrs.extra {
		if strings.EqualFold(k, "content-id") {
			return strings.Trim(v, "<>")
		}
	}
	return ""
}

// isValidBoundary reports whether the boundary parameter is present, ASCII
// printable, within RFC length limits and not ending in a space.
func isValidBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 200 {
		return false
	}
	for i := 0; i < len(boundary); i++ {
		c := boundary[i]
		if c < ' ' || c > '~' {
			return false
		}
	}
	return boundary[len(boundary)-1] != ' '
}
