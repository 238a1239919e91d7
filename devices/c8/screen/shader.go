package screen

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 420

uniform vec3 foreground;
uniform vec3 background;

layout (binding = 0) uniform sampler2D display;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // The red channel holds 1.0 for lit pixels and 0.0 otherwise.
    float lit = texture(display, fragTexCoord).r;
    outputColor = vec4(mix(background, foreground, lit), 1);
}
`
