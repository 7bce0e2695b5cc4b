// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast

import (
	"context"
	"strings"
	"time"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/featurebasedb/sqlcast/sql3/parser"
	"github.com/featurebasedb/sqlcast/sql3/planner"
	"golang.org/x/sync/errgroup"
)

// API evaluates SQL statements and standalone casts. It is safe for
// concurrent use.
type API struct {
	logger logger.Logger

	castParallelism int
}

type apiOption func(*API) error

func OptAPILogger(l logger.Logger) apiOption {
	return func(a *API) error {
		a.logger = l
		return nil
	}
}

// OptAPICastParallelism bounds the number of casts CastBatch evaluates at
// once.
func OptAPICastParallelism(n int) apiOption {
	return func(a *API) error {
		if n < 1 {
			return errors.Errorf("cast parallelism must be positive, got %d", n)
		}
		a.castParallelism = n
		return nil
	}
}

func NewAPI(opts ...apiOption) (*API, error) {
	api := &API{
		logger:          logger.NopLogger,
		castParallelism: 4,
	}

	for _, opt := range opts {
		err := opt(api)
		if err != nil {
			return nil, errors.Wrap(err, "applying option")
		}
	}
	return api, nil
}

// CompilePlan parses and compiles a single SQL statement.
func (api *API) CompilePlan(ctx context.Context, sql string) (*planner.PlanOpQuery, error) {
	query, err := planner.CompileSQL(ctx, api.logger, sql)
	if err != nil {
		return nil, err
	}
	for _, target := range planner.CastTargets(query) {
		CounterCasts.WithLabelValues(target).Inc()
	}
	return query, nil
}

// Query compiles and runs sql. Statements that fail to compile return an
// error; failures while evaluating are reported in the response.
func (api *API) Query(ctx context.Context, sql string, includePlan bool) (*WireQueryResponse, error) {
	start := time.Now()
	defer func() {
		HistogramQueryDuration.Observe(time.Since(start).Seconds())
	}()

	query, err := api.CompilePlan(ctx, sql)
	if err != nil {
		CounterQueries.WithLabelValues(outcomeCompileError).Inc()
		countError(err)
		api.logger.Debugf("compile failed: %s: %v", sql, err)
		return nil, err
	}

	resp := &WireQueryResponse{
		Schema: wireSchema(query.Schema()),
		Data:   make([][]interface{}, 0),
	}
	if includePlan {
		resp.QueryPlan = query.Plan()
	}

	rows, err := query.Rows(ctx)
	if err != nil {
		CounterQueries.WithLabelValues(outcomeError).Inc()
		countError(err)
		resp.Error = errors.Message(err)
		resp.ExecutionTime = time.Since(start).Microseconds()
		return resp, nil
	}
	for _, row := range rows {
		out := make([]interface{}, len(row))
		for i, v := range row {
			out[i] = wireValue(v)
		}
		resp.Data = append(resp.Data, out)
	}
	resp.Warnings = query.Warnings()
	resp.ExecutionTime = time.Since(start).Microseconds()
	CounterQueries.WithLabelValues(outcomeOK).Inc()
	return resp, nil
}

// CastRequest converts a single string value to the named type. A nil Value
// is NULL.
type CastRequest struct {
	Value *string `json:"value" yaml:"value"`
	Type  string  `json:"type" yaml:"type"`
	Try   bool    `json:"try,omitempty" yaml:"try,omitempty"`
}

// CastResponse holds the result of a CastRequest. A nil Result is NULL.
type CastResponse struct {
	Value  *string `json:"value"`
	Type   string  `json:"type"`
	Result *string `json:"result"`
	Error  string  `json:"error,omitempty"`
}

// Cast converts req.Value to req.Type. Invalid type names are errors even
// for a try cast.
func (api *API) Cast(ctx context.Context, req CastRequest) (*CastResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	typ, err := parser.ParseTypeString(req.Type)
	if err != nil {
		countError(err)
		return nil, err
	}
	resp := &CastResponse{
		Value: req.Value,
		Type:  typ.DataType.TypeDescription(),
	}
	CounterCasts.WithLabelValues(typ.DataType.BaseTypeName()).Inc()

	var value interface{}
	if req.Value != nil {
		value = *req.Value
	}
	out, err := planner.Cast(value, parser.NewDataTypeString(), typ.DataType, planner.CastOptions{Strict: !req.Try}, parser.Pos{})
	if err != nil {
		countError(err)
		return nil, err
	}
	if out != nil {
		s := planner.FormatValue(out)
		resp.Result = &s
	}
	return resp, nil
}

// CastBatch runs Cast over reqs, preserving order. Per-request failures are
// reported in each response's Error; the returned error is only set when ctx
// is done.
func (api *API) CastBatch(ctx context.Context, reqs []CastRequest) ([]*CastResponse, error) {
	resps := make([]*CastResponse, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(api.castParallelism)
	for i := range reqs {
		i := i
		g.Go(func() error {
			resp, err := api.Cast(ctx, reqs[i])
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				resp = &CastResponse{
					Value: reqs[i].Value,
					Type:  strings.TrimSpace(reqs[i].Type),
					Error: errors.Message(err),
				}
			}
			resps[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	api.logger.Debugf("cast batch of %d value(s) complete", len(reqs))
	return resps, nil
}

// Version returns the version without a leading "v".
func (api *API) Version() string {
	return strings.TrimPrefix(Version, "v")
}

func countError(err error) {
	CounterErrors.WithLabelValues(string(errors.CodeOf(err))).Inc()
}
