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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterBlocks(t *testing.T) {
	var e Emitter
	e.Writef("if (%s) {", "a")
	err := e.Block(func() error {
		e.Writef("x = %d %% 2;", 5)
		return e.Block(func() error {
			e.Writef("y;")
			return nil
		})
	})
	require.NoError(t, err)
	e.Writef("}")

	assert.Equal(t, "if (a) {\n\tx = 5 % 2;\n\t\ty;\n}", e.String())
	assert.Equal(t, 0, e.Indent())
	assert.Len(t, e.Lines(), 4)
}

func TestEmitterBlockRestoresIndentOnError(t *testing.T) {
	var e Emitter
	boom := errors.New("boom")
	err := e.Block(func() error {
		return e.Block(func() error {
			assert.Equal(t, 2, e.Indent())
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, e.Indent())
}

func TestEmitterReset(t *testing.T) {
	var e Emitter
	assert.Equal(t, "", e.String())
	e.Writef("a;")
	e.Writef("b;")
	assert.Equal(t, "a;\nb;", e.String())
	e.Reset()
	assert.Empty(t, e.Lines())
	assert.Equal(t, "", e.String())
}

func TestEmitterResetKeepsEarlierLines(t *testing.T) {
	var e Emitter
	e.Writef("a;")
	e.Writef("b;")
	prev := e.Lines()
	e.Reset()
	e.Writef("c;")
	assert.Equal(t, []string{"a;", "b;"}, prev)
	assert.Equal(t, []string{"c;"}, e.Lines())
}
