// Copyright 2026 stencilgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stencil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/tools/txtar"
)

// Bundle section names.
const (
	DescriptionSection = "stencil.json"
	KernelSection      = "kernel.py"
)

// description is the JSON form of a Stencil.
//
// Weights is either a dense list in Points order or an object keyed by
// coordinates such as "-1,0".
type description struct {
	Name          string          `json:"name"`
	BaseType      string          `json:"basetype"`
	Shape         [][2]int        `json:"shape"`
	Weights       json.RawMessage `json:"weights"`
	WeightDivisor float64         `json:"weight_divisor"`
	Defines       []string        `json:"defines"`
	ExtParams     []string        `json:"ext_params"`
}

// LoadBundle reads a stencil bundle from a txtar file.
func LoadBundle(path string) (*Stencil, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return ParseBundle(path, data)
}

// ParseBundle parses a txtar stencil bundle. It holds a stencil.json
// description and, for custom kernels, a kernel.py body. The archive
// comment is free text. When the description has no name, the bundle file
// name without extension is used.
func ParseBundle(filename string, data []byte) (*Stencil, error) {
	ar := txtar.Parse(data)

	var desc *description
	var source string
	for _, f := range ar.Files {
		switch f.Name {
		case DescriptionSection:
			if desc != nil {
				return nil, fmt.Errorf("%s: duplicate %s", filename, DescriptionSection)
			}
			desc = &description{}
			dec := json.NewDecoder(bytes.NewReader(f.Data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(desc); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", filename, DescriptionSection, err)
			}
		case KernelSection:
			source = string(f.Data)
		default:
			return nil, fmt.Errorf("%s: unexpected section %q", filename, f.Name)
		}
	}
	if desc == nil {
		return nil, fmt.Errorf("%s: missing %s", filename, DescriptionSection)
	}

	s := &Stencil{
		Name:          desc.Name,
		BaseType:      desc.BaseType,
		WeightDivisor: desc.WeightDivisor,
		Defines:       desc.Defines,
		ExtParams:     desc.ExtParams,
		Source:        source,
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	for _, r := range desc.Shape {
		s.Shape = append(s.Shape, Range{Lo: r[0], Hi: r[1]})
	}

	weights, err := parseWeights(s.Shape, desc.Weights)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s.Weights = weights

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

func parseWeights(shape []Range, raw json.RawMessage) ([]Weight, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '[' {
		var dense []float64
		if err := json.Unmarshal(raw, &dense); err != nil {
			return nil, fmt.Errorf("weights: %w", err)
		}
		return DenseWeights(shape, dense)
	}

	var sparse map[string]float64
	if err := json.Unmarshal(raw, &sparse); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	keys := lo.Keys(sparse)
	slices.Sort(keys)

	var weights []Weight
	for _, k := range keys {
		c, err := ParseCoord(k)
		if err != nil {
			return nil, err
		}
		if sparse[k] != 0 {
			weights = append(weights, Weight{At: c, Value: sparse[k]})
		}
	}
	return weights, nil
}
