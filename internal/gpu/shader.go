package gpu

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MemoryStrategy selects how invocations read the affecting buffer.
type MemoryStrategy int

const (
	// Global reads every affecting particle straight from the storage buffer.
	Global MemoryStrategy = iota
	// Shared stages the affecting buffer through workgroup memory one tile
	// at a time, so each particle is fetched once per workgroup.
	Shared
)

func (m MemoryStrategy) String() string {
	switch m {
	case Global:
		return "global"
	case Shared:
		return "shared"
	default:
		return fmt.Sprintf("MemoryStrategy(%d)", int(m))
	}
}

func ParseMemoryStrategy(s string) (MemoryStrategy, error) {
	switch strings.ToLower(s) {
	case "", "global":
		return Global, nil
	case "shared", "tiled":
		return Shared, nil
	}
	return 0, errors.Errorf("unknown memory strategy: %q", s)
}

const DefaultWorkgroupSize = 256

const shaderHeader = `#version 430
layout(local_size_x = %d) in;

struct PointMass {
	vec3 position;
	float mass;
};

layout(std430, binding = 0) readonly buffer Affected { PointMass affected[]; };
layout(std430, binding = 1) readonly buffer Affecting { PointMass affecting[]; };
layout(std430, binding = 2) writeonly buffer Output { vec4 accelerations[]; };

uniform uint affectedLen;
uniform uint affectingLen;

vec3 accelerationFrom(vec3 p, PointMass other) {
	vec3 dir = other.position - p;
	float mag2 = dot(dir, dir);
	if (mag2 == 0.0) {
		return vec3(0.0);
	}
	return dir * (other.mass / (mag2 * sqrt(mag2)));
}
`

const globalBody = `
void main() {
	uint i = gl_GlobalInvocationID.x;
	if (i >= affectedLen) {
		return;
	}
	vec3 p = affected[i].position;
	vec3 acc = vec3(0.0);
	for (uint j = 0u; j < affectingLen; j++) {
		acc += accelerationFrom(p, affecting[j]);
	}
	accelerations[i] = vec4(acc, 0.0);
}
`

const sharedBody = `
shared PointMass tile[%d];

void main() {
	uint i = gl_GlobalInvocationID.x;
	uint local = gl_LocalInvocationID.x;
	bool active = i < affectedLen;
	vec3 p = active ? affected[i].position : vec3(0.0);
	vec3 acc = vec3(0.0);
	for (uint base = 0u; base < affectingLen; base += %du) {
		uint j = base + local;
		tile[local] = j < affectingLen ? affecting[j] : PointMass(vec3(0.0), 0.0);
		barrier();
		uint count = min(%du, affectingLen - base);
		for (uint k = 0u; k < count; k++) {
			acc += accelerationFrom(p, tile[k]);
		}
		barrier();
	}
	if (active) {
		accelerations[i] = vec4(acc, 0.0);
	}
}
`

// Source returns the GLSL compute shader for a strategy and workgroup size.
func Source(strategy MemoryStrategy, workgroupSize int) string {
	header := fmt.Sprintf(shaderHeader, workgroupSize)
	if strategy == Shared {
		return header + fmt.Sprintf(sharedBody, workgroupSize, workgroupSize, workgroupSize)
	}
	return header + globalBody
}

// workgroups is the dispatch size covering n invocations.
func workgroups(n, workgroupSize int) int {
	return (n + workgroupSize - 1) / workgroupSize
}
