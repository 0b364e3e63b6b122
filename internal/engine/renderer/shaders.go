package renderer

// Both paths draw round points with an optional border ring. Point size
// and border are in CSS pixels and scaled by uPixelRatio.

const pointFragment = `
#version 410 core

in vec4 vColor;
in float vSize;

uniform float uBorderSize;
uniform vec4 uBorderColor;

out vec4 FragColor;

void main() {
	vec2 p = gl_PointCoord * 2.0 - 1.0;
	float r = length(p);
	if (r > 1.0) {
		discard;
	}
	float inner = 1.0 - 2.0 * uBorderSize / max(vSize, 1.0);
	FragColor = r > inner ? uBorderColor : vColor;
}
`

// lodVertex draws level-ordered points. aPos is normalized to the data box.
const lodVertex = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in float aSize;
layout (location = 2) in vec4 aColor;

uniform mat4 uViewProj;
uniform float uPixelRatio;
uniform float uBorderSize;

out vec4 vColor;
out float vSize;

void main() {
	gl_Position = uViewProj * vec4(aPos, 0.0, 1.0);
	vSize = aSize + 2.0 * uBorderSize;
	gl_PointSize = vSize * uPixelRatio;
	vColor = aColor;
}
`

// gridVertex reconstructs one point per grid cell from the packed
// texture. Empty cells are moved outside the clip volume.
const gridVertex = `
#version 410 core

layout (location = 0) in float aId;

uniform sampler2D uPoints;
uniform float uShape;
uniform float uChannelScale;
uniform mat4 uViewProj;
uniform float uPixelRatio;
uniform float uBorderSize;
uniform vec4 uColor;

out vec4 vColor;
out float vSize;

void main() {
	float cx = mod(aId, uShape);
	float cy = floor(aId / uShape);
	vec4 cell = texelFetch(uPoints, ivec2(int(cx), int(cy)), 0);

	if (cell.z == 0.0) {
		gl_Position = vec4(2.0, 2.0, 2.0, 1.0);
		gl_PointSize = 0.0;
		return;
	}

	vec2 pos = (vec2(cx, cy) + cell.xy) / uShape;
	gl_Position = uViewProj * vec4(pos, 0.0, 1.0);
	vSize = cell.w * uChannelScale + 2.0 * uBorderSize;
	gl_PointSize = vSize * uPixelRatio;
	vColor = uColor;
}
`
