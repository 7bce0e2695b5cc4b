// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// Queryer runs a single SQL statement. Statement errors are reported in the
// response; the returned error is for failures to get a response at all.
type Queryer interface {
	Query(ctx context.Context, sql io.Reader) (*sqlcast.WireQueryResponse, error)
}

// Ensure type implements interface.
var _ Queryer = (*localQueryer)(nil)

// localQueryer evaluates statements in process.
type localQueryer struct {
	api *sqlcast.API
}

// NewLocalQueryer returns a Queryer which evaluates statements with api.
func NewLocalQueryer(api *sqlcast.API) Queryer {
	return &localQueryer{api: api}
}

func (q *localQueryer) Query(ctx context.Context, sql io.Reader) (*sqlcast.WireQueryResponse, error) {
	b, err := io.ReadAll(sql)
	if err != nil {
		return nil, errors.Wrap(err, "reading query")
	}
	resp, err := q.api.Query(ctx, string(b), false)
	if err != nil {
		return &sqlcast.WireQueryResponse{
			Data:  make([][]interface{}, 0),
			Error: errors.Message(err),
		}, nil
	}
	return resp, nil
}

// Ensure type implements interface.
var _ Queryer = (*httpQueryer)(nil)

// httpQueryer posts statements to the /sql endpoint of a sqlcast server.
// Connection failures and 5xx responses are retried.
type httpQueryer struct {
	url    string
	client *retryablehttp.Client
}

// NewHTTPQueryer returns a Queryer for the server at host and port.
func NewHTTPQueryer(host, port string, timeout time.Duration, log logger.Logger) Queryer {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = &retryLogger{logger: log}

	return &httpQueryer{
		url:    fmt.Sprintf("%s/sql", hostPort(host, port)),
		client: client,
	}
}

func (q *httpQueryer) Query(ctx context.Context, sql io.Reader) (*sqlcast.WireQueryResponse, error) {
	req, err := retryablehttp.NewRequest(http.MethodPost, q.url, sql)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "posting query")
	}
	defer resp.Body.Close()

	fullbod, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		return nil, errors.Errorf("unexpected status %d: %s", resp.StatusCode, fullbod)
	}

	sqlResponse := &sqlcast.WireQueryResponse{}
	if err := sqlResponse.UnmarshalJSONTyped(fullbod, true); err != nil {
		return nil, errors.Wrapf(err, "unmarshaling query response, body:\n'%s'\n", fullbod)
	}
	return sqlResponse, nil
}

// retryLogger adapts a logger.Logger to retryablehttp.LeveledLogger.
type retryLogger struct {
	logger logger.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infof("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnf("%s %v", msg, keysAndValues)
}

func hostPort(host, port string) string {
	if port == "" {
		return host
	}
	return host + ":" + port
}
