// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import (
	"strings"

	"github.com/featurebasedb/sqlcast/errors"
)

// splitter is a line splitter which splits a line into queryParts and
// metaCommands.
type splitter struct {
	replacer *replacer
}

func newSplitter(r *replacer) *splitter {
	return &splitter{
		replacer: r,
	}
}

// split splits the given line into queryParts and metaCommands.
// If a metaCommand is found, everything after that is considered either
// arguments to that metaCommand, or additional metaCommands. In other words,
// queryParts can not follow metaCommands in the same line.
//
// A line can contain any of the following patterns:
// 1- [queryParts...]: "select 1; select"
// 2- [metaCommands...]: "\p \q"
// 3- [queryParts...][metaCommands...]: "select 1 \p"
func (s *splitter) split(line string) ([]queryPart, []metaCommand, error) {
	// Look for a comment line.
	if strings.HasPrefix(strings.TrimSpace(line), "--") {
		return nil, nil, nil
	}

	// Look for a meta command.
	parts := strings.SplitN(line, `\`, 2)

	qps, err := s.splitQueryParts(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil, errors.Wrap(err, "splitting query parts")
	}
	if len(parts) == 1 {
		return qps, nil, nil
	}

	mcs, err := s.splitMetaCommands(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil, errors.Wrap(err, "splitting meta commands")
	}
	return qps, mcs, nil
}

func (s *splitter) splitQueryParts(line string) ([]queryPart, error) {
	if line == "" {
		return nil, nil
	}

	line = s.replacer.replace(line)

	// Look for a termination character.
	parts := strings.Split(line, terminationChar)
	if len(parts) == 1 {
		return []queryPart{
			newPartRaw(strings.TrimSpace(parts[0])),
		}, nil
	}

	qps := make([]queryPart, 0)
	for i := range parts {
		part := strings.TrimSpace(parts[i])
		if part == "" {
			// If the line starts with a ";", treat it as a terminator for a
			// previous line.
			if i == 0 {
				qps = append(qps, newPartTerminator())
			}
			continue
		}
		qps = append(qps, newPartRaw(part))
		if i < len(parts)-1 {
			qps = append(qps, newPartTerminator())
		}
	}

	return qps, nil
}

func (s *splitter) splitMetaCommands(in string) ([]metaCommand, error) {
	parts := strings.Split(in, `\`)

	mcs := make([]metaCommand, 0, len(parts))
	for i := range parts {
		part := strings.TrimSpace(parts[i])
		if part == "" && len(parts) > 1 {
			continue
		}
		mc, err := splitMetaCommand(part, s.replacer)
		if err != nil {
			return nil, errors.Wrapf(err, "splitting meta command: %s", part)
		}
		mcs = append(mcs, mc)
	}

	return mcs, nil
}
