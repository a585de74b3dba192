package blend

// ShaderSource is the WGSL twin of this package's blend table, dispatched
// by an integer mode uniform so both backends produce visually identical
// output. The GPU backend compiles it through naga and binds:
//
//	group 0, binding 0: Params uniform {width, height, mode, opacity}
//	group 0, binding 1: source pixels (read-only storage, packed RGBA8)
//	group 0, binding 2: backdrop pixels (storage, packed RGBA8, in/out)
//
// Pixels are packed one u32 per texel, 0xAABBGGRR, non-premultiplied.
const ShaderSource = `
struct Params {
    width: u32,
    height: u32,
    mode: u32,
    opacity: f32,
}

@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var<storage, read> src_pixels: array<u32>;
@group(0) @binding(2) var<storage, read_write> dst_pixels: array<u32>;

fn unpack_rgba(p: u32) -> vec4<f32> {
    return vec4<f32>(
        f32(p & 0xffu) / 255.0,
        f32((p >> 8u) & 0xffu) / 255.0,
        f32((p >> 16u) & 0xffu) / 255.0,
        f32((p >> 24u) & 0xffu) / 255.0,
    );
}

fn pack_rgba(c: vec4<f32>) -> u32 {
    let r = u32(clamp(c.r, 0.0, 1.0) * 255.0 + 0.5);
    let g = u32(clamp(c.g, 0.0, 1.0) * 255.0 + 0.5);
    let b = u32(clamp(c.b, 0.0, 1.0) * 255.0 + 0.5);
    let a = u32(clamp(c.a, 0.0, 1.0) * 255.0 + 0.5);
    return r | (g << 8u) | (b << 16u) | (a << 24u);
}

fn hard_light(b: f32, s: f32) -> f32 {
    if (s <= 0.5) {
        return b * 2.0 * s;
    }
    return 1.0 - (1.0 - b) * (1.0 - (2.0 * s - 1.0));
}

fn soft_light(b: f32, s: f32) -> f32 {
    if (s <= 0.5) {
        return b - (1.0 - 2.0 * s) * b * (1.0 - b);
    }
    var d: f32;
    if (b <= 0.25) {
        d = ((16.0 * b - 12.0) * b + 4.0) * b;
    } else {
        d = sqrt(b);
    }
    return b + (2.0 * s - 1.0) * (d - b);
}

fn color_dodge(b: f32, s: f32) -> f32 {
    if (s >= 1.0) {
        return 1.0;
    }
    return min(1.0, b / (1.0 - s));
}

fn color_burn(b: f32, s: f32) -> f32 {
    if (s <= 0.0) {
        return 0.0;
    }
    return 1.0 - min(1.0, (1.0 - b) / s);
}

fn lum(c: vec3<f32>) -> f32 {
    return dot(c, vec3<f32>(0.30, 0.59, 0.11));
}

fn sat(c: vec3<f32>) -> f32 {
    return max(max(c.r, c.g), c.b) - min(min(c.r, c.g), c.b);
}

fn clip_color(c: vec3<f32>) -> vec3<f32> {
    let l = lum(c);
    let n = min(min(c.r, c.g), c.b);
    let x = max(max(c.r, c.g), c.b);
    var out = c;
    if (n < 0.0) {
        out = vec3<f32>(l) + (out - vec3<f32>(l)) * l / (l - n);
    }
    if (x > 1.0) {
        out = vec3<f32>(l) + (out - vec3<f32>(l)) * (1.0 - l) / (x - l);
    }
    return out;
}

fn set_lum(c: vec3<f32>, l: f32) -> vec3<f32> {
    return clip_color(c + vec3<f32>(l - lum(c)));
}

fn set_sat(c: vec3<f32>, s: f32) -> vec3<f32> {
    let mn = min(min(c.r, c.g), c.b);
    let mx = max(max(c.r, c.g), c.b);
    if (mx <= mn) {
        return vec3<f32>(0.0);
    }
    return (c - vec3<f32>(mn)) * s / (mx - mn);
}

fn blend_channels(mode: u32, b: vec3<f32>, s: vec3<f32>) -> vec3<f32> {
    switch mode {
        case 1u: { // multiply
            return b * s;
        }
        case 2u: { // screen
            return vec3<f32>(1.0) - (vec3<f32>(1.0) - b) * (vec3<f32>(1.0) - s);
        }
        case 3u: { // overlay = hard-light swapped
            return vec3<f32>(hard_light(s.r, b.r), hard_light(s.g, b.g), hard_light(s.b, b.b));
        }
        case 4u: { // darken
            return min(b, s);
        }
        case 5u: { // lighten
            return max(b, s);
        }
        case 6u: { // color-dodge
            return vec3<f32>(color_dodge(b.r, s.r), color_dodge(b.g, s.g), color_dodge(b.b, s.b));
        }
        case 7u: { // color-burn
            return vec3<f32>(color_burn(b.r, s.r), color_burn(b.g, s.g), color_burn(b.b, s.b));
        }
        case 8u: { // hard-light
            return vec3<f32>(hard_light(b.r, s.r), hard_light(b.g, s.g), hard_light(b.b, s.b));
        }
        case 9u: { // soft-light
            return vec3<f32>(soft_light(b.r, s.r), soft_light(b.g, s.g), soft_light(b.b, s.b));
        }
        case 10u: { // difference
            return abs(b - s);
        }
        case 11u: { // exclusion
            return b + s - 2.0 * b * s;
        }
        case 12u: { // hue
            return set_lum(set_sat(s, sat(b)), lum(b));
        }
        case 13u: { // saturation
            return set_lum(set_sat(b, sat(s)), lum(b));
        }
        case 14u: { // color
            return set_lum(s, lum(b));
        }
        case 15u: { // luminosity
            return set_lum(b, lum(s));
        }
        default: { // normal
            return s;
        }
    }
}

@compute @workgroup_size(8, 8, 1)
fn cs_blend(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= params.width || gid.y >= params.height) {
        return;
    }
    let idx = gid.y * params.width + gid.x;

    let s4 = unpack_rgba(src_pixels[idx]);
    let d4 = unpack_rgba(dst_pixels[idx]);

    let sa = s4.a * params.opacity;
    let da = d4.a;
    let out_a = sa + da * (1.0 - sa);
    if (out_a <= 0.0) {
        dst_pixels[idx] = 0u;
        return;
    }

    let blended = blend_channels(params.mode, d4.rgb, s4.rgb);
    let out_rgb = (sa * (1.0 - da) * s4.rgb + sa * da * blended + (1.0 - sa) * da * d4.rgb) / out_a;

    dst_pixels[idx] = pack_rgba(vec4<f32>(out_rgb, out_a));
}
`
