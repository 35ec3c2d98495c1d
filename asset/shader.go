// SPDX-License-Identifier: Unlicense OR MIT

// Package asset loads shader text and builds images for textures.
package asset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Sources holds the per-stage text of a combined shader file. Missing
// stages are empty.
type Sources struct {
	Vertex   string
	Fragment string
	Compute  string
}

const tagPrefix = "@shader:"

// LoadShader reads a GLSL file.
func LoadShader(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("asset: %w", err)
	}
	return string(src), nil
}

// LoadCombinedShader reads and splits a combined shader file.
func LoadCombinedShader(path string) (Sources, error) {
	src, err := LoadShader(path)
	if err != nil {
		return Sources{}, err
	}
	s, err := SplitShader(src)
	if err != nil {
		return Sources{}, fmt.Errorf("asset: %s: %w", path, err)
	}
	return s, nil
}

// SplitShader splits src on lines of the form "@shader:<stage>", where
// stage is vertex, fragment or compute. Text before the first tag is
// ignored.
func SplitShader(src string) (Sources, error) {
	var (
		out   Sources
		cur   *string
		seen  = make(map[string]bool)
		body  strings.Builder
		line  int
		found bool
	)
	flush := func() {
		if cur != nil {
			*cur = body.String()
		}
		body.Reset()
	}
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(nil, len(src)+1)
	for sc.Scan() {
		line++
		text := sc.Text()
		if stage, ok := strings.CutPrefix(strings.TrimSpace(text), tagPrefix); ok {
			stage = strings.TrimSpace(stage)
			flush()
			if seen[stage] {
				return Sources{}, fmt.Errorf("line %d: duplicate %s stage", line, stage)
			}
			seen[stage] = true
			switch stage {
			case "vertex":
				cur = &out.Vertex
			case "fragment":
				cur = &out.Fragment
			case "compute":
				cur = &out.Compute
			default:
				return Sources{}, fmt.Errorf("line %d: unknown shader stage %q", line, stage)
			}
			found = true
			continue
		}
		if cur != nil {
			body.WriteString(text)
			body.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return Sources{}, err
	}
	if !found {
		return Sources{}, fmt.Errorf("no %s<stage> tags", tagPrefix)
	}
	flush()
	return out, nil
}
