// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitter(t *testing.T) {
	s := newSplitter(newNopReplacer())
	t.Run("Split", func(t *testing.T) {
		tests := []struct {
			line            string
			expQueryParts   []queryPart
			expMetaCommands []metaCommand
			expError        string
		}{
			{
				line: `foo`,
				expQueryParts: []queryPart{
					newPartRaw("foo"),
				},
			},
			{
				line: `foo;`,
				expQueryParts: []queryPart{
					newPartRaw("foo"),
					newPartTerminator(),
				},
			},
			{
				line: `foo; ; `,
				expQueryParts: []queryPart{
					newPartRaw("foo"),
					newPartTerminator(),
				},
			},
			{
				line: `foo; bar`,
				expQueryParts: []queryPart{
					newPartRaw("foo"),
					newPartTerminator(),
					newPartRaw("bar"),
				},
			},
			{
				line: `; foo`,
				expQueryParts: []queryPart{
					newPartTerminator(),
					newPartRaw("foo"),
				},
			},
			{
				line: `select '1'::int;`,
				expQueryParts: []queryPart{
					newPartRaw("select '1'::int"),
					newPartTerminator(),
				},
			},
			{
				line: `-- a comment; \q`,
			},
			{
				line: `\q`,
				expMetaCommands: []metaCommand{
					{name: "quit"},
				},
			},
			{
				line: ` \p`,
				expMetaCommands: []metaCommand{
					{name: "print"},
				},
			},
			{
				line: `\q \p arg1 arg2`,
				expMetaCommands: []metaCommand{
					{name: "quit"},
					{name: "print", args: []string{"arg1", "arg2"}},
				},
			},
			{
				line: `select 1 \p`,
				expQueryParts: []queryPart{
					newPartRaw("select 1"),
				},
				expMetaCommands: []metaCommand{
					{name: "print"},
				},
			},
			{
				line: `\set`,
				expMetaCommands: []metaCommand{
					{name: "set"},
				},
			},
			{
				line: `\set 'arg1' 'arg two'`,
				expMetaCommands: []metaCommand{
					{name: "set", args: []string{"arg1", "arg two"}},
				},
			},
			{
				line: `\timing  on`,
				expMetaCommands: []metaCommand{
					{name: "timing", args: []string{"on"}},
				},
			},
			{
				line:     `\`,
				expError: "unsupported meta-command:",
			},
			{
				line:     `\xyzxyz`,
				expError: "unsupported meta-command:",
			},
		}
		for i, tt := range tests {
			t.Run(fmt.Sprintf("test-%d-%s", i, tt.line), func(t *testing.T) {
				qps, mcs, err := s.split(tt.line)
				if tt.expError != "" {
					if assert.Error(t, err) {
						assert.Contains(t, err.Error(), tt.expError)
					}
					return
				}

				assert.NoError(t, err)
				assert.ElementsMatch(t, tt.expQueryParts, qps)
				assert.ElementsMatch(t, tt.expMetaCommands, mcs)
			})
		}
	})
}

func TestBuffer(t *testing.T) {
	b := newBuffer()
	assert.True(t, b.isEmpty())
	assert.Equal(t, "Query buffer is empty.", b.print())

	qry, err := b.addPart(newPartTerminator())
	assert.NoError(t, err)
	assert.Nil(t, qry)

	qry, err = b.addPart(newPartRaw("select"))
	assert.NoError(t, err)
	assert.Nil(t, qry)
	assert.False(t, b.isEmpty())

	qry, err = b.addPart(newPartRaw("1"))
	assert.NoError(t, err)
	assert.Nil(t, qry)
	assert.Equal(t, "select\n1", b.print())

	qry, err = b.addPart(newPartTerminator())
	assert.NoError(t, err)
	assert.Equal(t, "select\n1", qry.String())
	assert.True(t, b.isEmpty())
	assert.Equal(t, "select\n1", b.print())

	_, _ = b.addPart(newPartRaw("select 2"))
	assert.Equal(t, "Query buffer reset (cleared).\n", b.reset())
	assert.True(t, b.isEmpty())
}
