// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package test

import (
	"context"
	"testing"

	"github.com/featurebasedb/sqlcast"
	"github.com/featurebasedb/sqlcast/errors"
	"github.com/google/uuid"
)

type contextKey int

const contextKeyRequestID contextKey = iota

// MustQueryRows returns the row results as a slice of []interface{}, along
// with the columns. Errors raised while compiling or evaluating are both
// returned as err.
func MustQueryRows(tb testing.TB, api *sqlcast.API, q string) ([][]interface{}, []*sqlcast.WireQueryField, error) {
	tb.Helper()
	ctx := context.WithValue(context.Background(), contextKeyRequestID, uuid.New().String())

	// get the plan so that code runs during testing
	resp, err := api.Query(ctx, q, true)
	if err != nil {
		return nil, nil, err
	}
	if resp.Error != "" {
		return nil, nil, errors.Errorf("%s", resp.Error)
	}
	return resp.Data, resp.Schema.Fields, nil
}

// MustAPI returns an API with default options.
func MustAPI(tb testing.TB) *sqlcast.API {
	tb.Helper()
	api, err := sqlcast.NewAPI()
	if err != nil {
		tb.Fatalf("creating api: %v", err)
	}
	return api
}
