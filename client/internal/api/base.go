package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apierr "github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/errors"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Observer receives one callback per adapter call; outcome is "ok" or the error kind.
type Observer func(resource, op, outcome string, elapsed time.Duration)

// Conn bundles what every adapter needs. It holds no per-call state.
type Conn struct {
	HTTP    types.HTTPClient
	BaseURL string
	Tokens  types.TokenSource
	Observe Observer
}

// call describes one adapter invocation.
type call struct {
	resource string
	op       string
	method   string
	path     string
	guarded  bool
	json     any            // JSON body, nil for none
	form     *multipartBody // multipart body; takes precedence over json
	fallback string
}

// formFile is one binary part of a multipart body.
type formFile struct {
	field string
	att   *types.Attachment
}

// multipartBody keeps field order stable so requests are reproducible.
type multipartBody struct {
	fields [][2]string
	files  []formFile
}

func (m *multipartBody) field(name, value string) { m.fields = append(m.fields, [2]string{name, value}) }

func (m *multipartBody) file(name string, att *types.Attachment) {
	if att != nil {
		m.files = append(m.files, formFile{field: name, att: att})
	}
}

func (m *multipartBody) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range m.fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	for _, f := range m.files {
		name := f.att.Filename
		if name == "" {
			name = f.field
		}
		part, err := w.CreateFormFile(f.field, name)
		if err != nil {
			return nil, "", err
		}
		if f.att.Content != nil {
			if _, err := io.Copy(part, f.att.Content); err != nil {
				return nil, "", err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// do runs one call and decodes a successful body into out (which may be nil).
//
// A guarded call without a token fails before any request is built. A body
// that does not parse as JSON is treated as absent and out keeps its zero value.
func (c Conn) do(ctx context.Context, cl call, out any) (err error) {
	start := time.Now()
	defer func() { c.observe(cl, err, time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	var token string
	if cl.guarded {
		tok, ok := "", false
		if c.Tokens != nil {
			tok, ok = c.Tokens.Token(ctx)
		}
		if !ok || tok == "" {
			return apierr.Unauthenticated(cl.op)
		}
		token = tok
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case cl.form != nil:
		buf, ct, err := cl.form.encode()
		if err != nil {
			return apierr.NewNetworkError(cl.op, err, cl.fallback)
		}
		body, contentType = buf, ct
	case cl.json != nil:
		b, err := json.Marshal(cl.json)
		if err != nil {
			return apierr.NewNetworkError(cl.op, err, cl.fallback)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	default:
		contentType = "application/json"
	}

	url := strings.TrimRight(c.BaseURL, "/") + cl.path
	httpReq, err := http.NewRequestWithContext(ctx, cl.method, url, body)
	if err != nil {
		return apierr.NewNetworkError(cl.op, err, cl.fallback)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", contentType)
	if cl.guarded {
		httpReq.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return apierr.NewNetworkError(cl.op, err, cl.fallback)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apierr.NewNetworkError(cl.op, err, cl.fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierr.NewHTTPError(cl.op, resp.StatusCode, raw, cl.fallback)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decodeInto(cl.op, resp.StatusCode, raw, out)
	return nil
}

// decodeInto sets *out only when raw decodes completely, so a body that fails
// halfway leaves out untouched.
func decodeInto(op string, status int, raw []byte, out any) {
	dst := reflect.ValueOf(out)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return
	}
	fresh := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		log.Debug().Err(err).Str("op", op).Int("status_code", status).Msg("response body ignored: not JSON")
		return
	}
	dst.Elem().Set(fresh.Elem())
}

func (c Conn) observe(cl call, err error, elapsed time.Duration) {
	if c.Observe == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if ae := asAPIError(err); ae != nil {
			outcome = strings.ToLower(ae.Kind.String())
		}
	}
	c.Observe(cl.resource, cl.op, outcome, elapsed)
}

func asAPIError(err error) *apierr.APIError {
	var ae *apierr.APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// itemPath renders "/api/<collection>/<id>/".
func itemPath(collection string, id int64) string {
	return fmt.Sprintf("/api/%s/%d/", collection, id)
}

func validateID(op string, id int64) error {
	if err := types.ValidateID(id, "id"); err != nil {
		return apierr.NewValidation(op, err.Error())
	}
	return nil
}
