// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqllogictest

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/sql3/planner"
	"github.com/featurebasedb/sqlcast/sql3/test/defs"
	"github.com/spf13/afero"
)

// Generate writes group as a logic test file. Every statement of a test
// becomes its own record.
func Generate(w io.Writer, group defs.TestGroup, name string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n# generated by sqlcast logictest generate; do not edit\n", name)

	for i, test := range group.SQLTests {
		for _, sql := range test.SQLs {
			if strings.Contains(sql, "\n") {
				return errors.Errorf("%s: multi-line statement in %s", name, test.Name(i))
			}
			fmt.Fprintf(&buf, "\n# %s\n", test.Name(i))
			switch {
			case test.ExpErr != "":
				fmt.Fprintf(&buf, "statement error %s\n%s\n", test.ExpErr, sql)
			case len(test.ExpHdrs) == 0:
				fmt.Fprintf(&buf, "statement ok\n%s\n", sql)
			default:
				types := make([]byte, len(test.ExpHdrs))
				for j, h := range test.ExpHdrs {
					base := h.Type
					if k := strings.IndexByte(base, '('); k >= 0 {
						base = base[:k]
					}
					types[j] = TypeLetter(base)
				}
				fmt.Fprintf(&buf, "query %s\n%s\n%s\n", types, sql, resultSeparator)
				for _, row := range test.ExpRows {
					for _, v := range row {
						fmt.Fprintf(&buf, "%s\n", formatResult(planner.FormatValue(v)))
					}
				}
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "writing")
}

// GenerateAll writes a file for each group into dir and returns the paths
// written.
func GenerateAll(fs afero.Fs, dir string, groups []defs.TestGroup) ([]string, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}

	paths := make([]string, 0, len(groups))
	for i, group := range groups {
		name := group.Name(i)
		var buf bytes.Buffer
		if err := Generate(&buf, group, name); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, name+FileExt)
		if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
			return nil, errors.Wrapf(err, "writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
