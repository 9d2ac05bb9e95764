package main

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const vertexShaderSrc = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec2 uv;

uniform mat4 mvp;

out vec3 fragPos;
out vec2 fragUV;

void main() {
	fragPos = position;
	fragUV = uv;
	gl_Position = mvp * vec4(position, 1.0);
}` + "\x00"

const fragmentShaderSrc = `#version 410 core
in vec3 fragPos;
in vec2 fragUV;

uniform vec3 cableColor;

out vec4 fragColor;

void main() {
	// Face normal from screen-space derivatives; saves a normal buffer.
	vec3 n = normalize(cross(dFdx(fragPos), dFdy(fragPos)));
	vec3 lightDir = normalize(vec3(0.4, 0.8, 0.5));
	float diffuse = max(dot(n, lightDir), 0.0);
	float stripe = 0.85 + 0.15 * step(0.5, fract(fragUV.y * 8.0));
	vec3 color = cableColor * stripe * (0.25 + 0.75 * diffuse);
	fragColor = vec4(color, 1.0);
}` + "\x00"

// newProgram compiles both shaders and links them into a program.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
