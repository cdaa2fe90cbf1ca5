package graphics

// World shader pair. The vertex layout matches the mesher's
// interleaved stream: position (location 0), uv (location 1), light
// (location 2, normalized to [0,1]).
const worldVertexShader = `
#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in float aLight;

uniform mat4 vp_matrix;
uniform mat4 model_matrix;

out vec2 TexCoord;
out float Light;

void main()
{
    gl_Position = vp_matrix * model_matrix * vec4(aPos, 1.0);
    TexCoord = aTexCoord;
    Light = aLight;
}
`

const worldFragmentShader = `
#version 330 core
out vec4 FragColor;

in vec2 TexCoord;
in float Light;

uniform sampler2D texture_atlas;

void main()
{
    vec4 texColor = texture(texture_atlas, TexCoord);
    if (texColor.a < 0.1) discard;

    float brightness = max(Light, 0.05);
    FragColor = vec4(texColor.rgb * brightness, texColor.a);
}
`
