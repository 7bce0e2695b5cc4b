// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cli

import "strings"

// replacer substitutes variable references in a line with the values in m.
// The map is shared with the command so \set takes effect immediately.
type replacer struct {
	m map[string]string
}

func newReplacer(m map[string]string) *replacer {
	return &replacer{
		m: m,
	}
}

func newNopReplacer() *replacer {
	return newReplacer(map[string]string{})
}

// replace replaces `:key` with m[key]. `:'key'` and `:"key"` produce the value
// wrapped in the same quotes. A run of two or more colons is the cast
// operator and is left alone, as are references to unset variables.
func (r *replacer) replace(s string) string {
	if !strings.Contains(s, ":") {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != ':' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		if i+1 < len(s) && s[i+1] == ':' {
			j := i
			for j < len(s) && s[j] == ':' {
				j++
			}
			sb.WriteString(s[i:j])
			i = j
			continue
		}

		start := i + 1
		var quote byte
		if start < len(s) && (s[start] == '\'' || s[start] == '"') {
			quote = s[start]
			start++
		}
		end := start
		for end < len(s) && isVariableChar(s[end]) {
			end++
		}
		name := s[start:end]
		closed := quote == 0 || (end < len(s) && s[end] == quote)
		v, ok := r.m[name]
		if name == "" || !closed || !ok {
			sb.WriteByte(':')
			i++
			continue
		}

		if quote == 0 {
			sb.WriteString(v)
			i = end
			continue
		}
		if quote == '\'' {
			v = strings.ReplaceAll(v, "'", "''")
		}
		sb.WriteByte(quote)
		sb.WriteString(v)
		sb.WriteByte(quote)
		i = end + 1
	}
	return sb.String()
}

func isVariableChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
