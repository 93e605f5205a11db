package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobposter/internal/models"
	"github.com/jimezsa/jobposter/internal/payload"
)

// Result is what the jobs endpoint answered. StatusCode 0 means the request
// never got a response; Body then holds {"error": message}. Otherwise Body is
// the decoded JSON response, or {"raw": text} when it wasn't JSON.
type Result struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// TransportFailed reports whether the request failed before a response arrived.
func (r Result) TransportFailed() bool {
	return r.StatusCode == 0
}

func (r Result) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Status returns the body's "status" value, if any.
func (r Result) Status() string {
	return r.bodyString("status")
}

// ReviewURL returns the body's "reviewUrl" value, if any.
func (r Result) ReviewURL() string {
	return r.bodyString("reviewUrl")
}

func (r Result) Held() bool {
	return r.Status() == models.StatusHeld
}

func (r Result) Published() bool {
	return r.Status() == models.StatusPublished
}

// ErrorMessage returns the body's "error" value, if any.
func (r Result) ErrorMessage() string {
	return r.bodyString("error")
}

func (r Result) bodyString(key string) string {
	body, ok := r.Body.(map[string]any)
	if !ok {
		return ""
	}
	value, _ := body[key].(string)
	return value
}

// SubmitJob posts doc to the jobs endpoint. It never returns an error: a
// transport failure is reported as a Result with StatusCode 0, and a non-2xx
// response is passed through as-is.
func (c *Client) SubmitJob(ctx context.Context, doc payload.Document) Result {
	data, err := json.Marshal(doc)
	if err != nil {
		return failure(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, c.endpoint(jobsPath), bytes.NewReader(data))
	if err != nil {
		return failure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("job submission failed")
		return failure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err)
	}

	return Result{StatusCode: resp.StatusCode, Body: decodeBody(body)}
}

func failure(err error) Result {
	return Result{StatusCode: 0, Body: map[string]any{"error": err.Error()}}
}

func decodeBody(body []byte) any {
	if !json.Valid(body) {
		return map[string]any{"raw": string(body)}
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return map[string]any{"raw": string(body)}
	}
	return decoded
}
