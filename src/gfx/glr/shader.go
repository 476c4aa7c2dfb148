// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Stage identifies the pipeline stage a shader runs in.
type Stage Enum

// Shader stages.
const (
	VertexStage   = Stage(VERTEX_SHADER)
	FragmentStage = Stage(FRAGMENT_SHADER)
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%04X)", uint32(s))
}

// StageFromSuffix maps a shader file suffix to its stage.
func StageFromSuffix(suffix string) (Stage, bool) {
	switch strings.TrimPrefix(suffix, ".") {
	case "vert", "vs":
		return VertexStage, true
	case "frag", "fs":
		return FragmentStage, true
	}
	return 0, false
}

// NewShader creates and compiles a shader of the given stage. When
// compilation fails the object is deleted again and a *CompileError
// carrying the compiler log is returned.
func NewShader(ctx *Context, stage Stage, source string) (*Shader, error) {
	id := ctx.fn.CreateShader(Enum(stage))
	if id == 0 {
		return nil, &ResourceError{Kind: stage.String() + " shader", Reason: "no handle returned"}
	}

	ctx.fn.ShaderSource(id, source)
	ctx.fn.CompileShader(id)
	if ctx.fn.GetShaderi(id, COMPILE_STATUS) == int32(FALSE) {
		msg := ctx.fn.GetShaderInfoLog(id)
		ctx.fn.DeleteShader(id)
		err := &CompileError{Stage: stage, Log: msg}
		ctx.log.WithField("stage", stage).Error(err)
		return nil, err
	}

	ctx.log.WithFields(log.Fields{"id": id, "stage": stage}).Debug("Shader created")
	return &Shader{ctx: ctx, id: id, stage: stage}, nil
}

// Shader owns one compiled shader stage. It is only needed until the
// program using it has been linked.
type Shader struct {
	noCopy noCopy

	ctx   *Context
	id    uint32
	stage Stage
}

// ID returns the shader handle.
func (s *Shader) ID() uint32 {
	return s.id
}

// Stage returns the pipeline stage of the shader.
func (s *Shader) Stage() Stage {
	return s.stage
}

// Release deletes the shader.
func (s *Shader) Release() {
	if s == nil || s.id == 0 {
		return
	}
	s.ctx.fn.DeleteShader(s.id)
	s.ctx.log.WithField("id", s.id).Debug("Shader deleted")
	s.id = 0
}
