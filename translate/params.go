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

package translate

import (
	"fmt"
	"strings"
)

// Param is an external parameter declared outside the kernel body.
type Param struct {
	Name string
	Type Type   // every token before the name, single-space separated
	Size string // text inside a trailing [...] on the name, "" for scalars
}

// Decl renders the parameter back as a C member declaration, e.g.
// "unsigned char opposite[Q]".
func (p Param) Decl() string {
	if p.Size != "" {
		return fmt.Sprintf("%s %s[%s]", p.Type, p.Name, p.Size)
	}
	return fmt.Sprintf("%s %s", p.Type, p.Name)
}

// ParseParam parses "<type tokens> <name>[<size>]". The last
// whitespace-separated token is the name; a trailing [...] is stripped from
// it and kept in Size.
func ParseParam(decl string) (Param, error) {
	fields := strings.Fields(decl)
	if len(fields) < 2 {
		return Param{}, &Error{
			Kind: ErrInvalidDeclaration,
			Msg:  fmt.Sprintf("external parameter %q needs a type and a name", decl),
		}
	}

	name := fields[len(fields)-1]
	var size string
	if i := strings.IndexByte(name, '['); i >= 0 {
		size = strings.TrimSuffix(name[i+1:], "]")
		name = name[:i]
	}
	if !IsIdentifier(name) {
		return Param{}, &Error{
			Kind: ErrInvalidDeclaration,
			Msg:  fmt.Sprintf("external parameter %q has an invalid name %q", decl, name),
		}
	}

	return Param{
		Name: name,
		Type: Type(strings.Join(fields[:len(fields)-1], " ")),
		Size: size,
	}, nil
}

// ParseParams parses every declaration, stopping at the first failure.
func ParseParams(decls []string) ([]Param, error) {
	params := make([]Param, 0, len(decls))
	for _, d := range decls {
		p, err := ParseParam(d)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// IsIdentifier reports whether s is an ASCII C identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
