// SPDX-License-Identifier: Unlicense OR MIT

// Package glutil wraps the repetitive parts of program and shader setup.
package glutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CreateProgram compiles the vertex and fragment sources and links them,
// binding the given attribute names to locations 0, 1, ... in order.
func CreateProgram(vsSrc, fsSrc string, attribs []string) (uint32, error) {
	vs, err := createShader(gl.VERTEX_SHADER, vsSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := createShader(gl.FRAGMENT_SHADER, fsSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)
	prog := gl.CreateProgram()
	if prog == 0 {
		return 0, errors.New("glCreateProgram failed")
	}
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	for i, a := range attribs {
		gl.BindAttribLocation(prog, uint32(i), gl.Str(a+"\x00"))
	}
	gl.LinkProgram(prog)
	if programi(prog, gl.LINK_STATUS) == 0 {
		defer gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link failed: %s", strings.TrimSpace(ProgramInfoLog(prog)))
	}
	return prog, nil
}

func createShader(typ uint32, src string) (uint32, error) {
	sh := gl.CreateShader(typ)
	if sh == 0 {
		return 0, errors.New("glCreateShader failed")
	}
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == 0 {
		defer gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compilation failed: %s", strings.TrimSpace(shaderInfoLog(sh)))
	}
	return sh, nil
}

// UniformLocation resolves a uniform by name. A missing uniform reports -1;
// callers decide whether that is fatal.
func UniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

// Validate asks the driver to validate the program against current GL state
// and returns its info log, which may be empty.
func Validate(prog uint32) string {
	gl.ValidateProgram(prog)
	return strings.TrimSpace(ProgramInfoLog(prog))
}

// ProgramInfoLog returns the program's info log.
func ProgramInfoLog(prog uint32) string {
	var logLength int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
	return trimNul(log[:logLength])
}

func shaderInfoLog(sh uint32) string {
	var logLength int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(log))
	return trimNul(log[:logLength])
}

// trimNul drops the trailing NULs GL leaves in info logs; INFO_LOG_LENGTH
// counts the terminator.
func trimNul(s string) string {
	return strings.TrimRight(s, "\x00")
}

func programi(prog uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(prog, pname, &v)
	return v
}

// Err drains the GL error flag and reports the first error, if any.
func Err() error {
	if st := gl.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}
