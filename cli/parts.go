// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"fmt"
	"io"
	"strings"
)

// query is a collection of queryParts which, when applied together, make up an
// executable SQL statement.
type query []queryPart

func (q query) String() string {
	var sb strings.Builder
	for i := range q {
		sb.WriteString(q[i].String())
		if i < len(q)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Reader returns the query as an io.Reader so that it can be passed to, for
// example, http.Post().
func (q query) Reader() io.Reader {
	readers := make([]io.Reader, 0, len(q))
	for i := range q {
		if r := q[i].Reader(); r != nil {
			readers = append(readers, r)
		}
	}
	return io.MultiReader(readers...)
}

// queryPart is anything which can be used to build up a query.
type queryPart interface {
	fmt.Stringer
	Reader() io.Reader
}

// Ensure type implements interface.
var _ queryPart = (*partRaw)(nil)

// partRaw is a fragment of SQL text.
type partRaw struct {
	raw string
}

func newPartRaw(s string) *partRaw {
	return &partRaw{
		raw: s,
	}
}

func (p *partRaw) Reader() io.Reader {
	return strings.NewReader(p.raw + "\n")
}

func (p *partRaw) String() string {
	return p.raw
}

// Ensure type implements interface.
var _ queryPart = (*partTerminator)(nil)

// partTerminator ends a statement (i.e. ";").
type partTerminator struct{}

func newPartTerminator() *partTerminator {
	return &partTerminator{}
}

func (p *partTerminator) Reader() io.Reader {
	return nil
}

func (p *partTerminator) String() string {
	return terminationChar
}
