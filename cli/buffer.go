// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

// buffer accumulates queryParts until a terminator completes a query.
type buffer struct {
	parts []queryPart

	// lastQuery is the most recently completed query, kept for \p.
	lastQuery query
}

func newBuffer() *buffer {
	return &buffer{}
}

// addPart appends qp to the buffer. When qp is a terminator, the buffered
// parts are returned as a query and the buffer is emptied. A terminator on an
// empty buffer is ignored.
func (b *buffer) addPart(qp queryPart) (query, error) {
	if _, ok := qp.(*partTerminator); !ok {
		b.parts = append(b.parts, qp)
		return nil, nil
	}
	if len(b.parts) == 0 {
		return nil, nil
	}
	q := query(b.parts)
	b.parts = nil
	b.lastQuery = q
	return q, nil
}

func (b *buffer) isEmpty() bool {
	return len(b.parts) == 0
}

// print returns the contents of the buffer, or the last query when the
// buffer is empty.
func (b *buffer) print() string {
	if len(b.parts) == 0 {
		if b.lastQuery == nil {
			return "Query buffer is empty."
		}
		return b.lastQuery.String()
	}
	return query(b.parts).String()
}

func (b *buffer) reset() string {
	b.parts = nil
	return "Query buffer reset (cleared).\n"
}
