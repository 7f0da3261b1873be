package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog/log"
)

// debugTransport logs each request and response at debug level.
//
// Enable with GUARDIAO_DEBUG=true or DEBUG=true. Bodies are dumped in full,
// so diary text and contact phones appear in the log; the session token does not.
//
//	export GUARDIAO_DEBUG=true
//	guardiao lembretes list
type debugTransport struct{ base http.RoundTripper }

var authHeaderRe = regexp.MustCompile(`(?mi)^(Authorization:\s*).*$`)

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", redactAuth(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func redactAuth(dump []byte) string {
	return authHeaderRe.ReplaceAllString(string(dump), "${1}[REDACTED]")
}

// debugLoggingRequested reports whether GUARDIAO_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("GUARDIAO_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
