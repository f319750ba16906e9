package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslVertexFormatMap maps WGSL vertex input types to wgpu vertex formats
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"i32":       {wgpu.VertexFormatSint32, 4},
}

// wgslPrimitiveLayoutMap holds size and alignment of the types a uniform struct may contain.
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"mat2x2<f32>": {16, 8},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

// wgslTextureDimMap maps sampled texture base names to their view dimension
var wgslTextureDimMap = map[string]wgpu.TextureViewDimension{
	"texture_1d":       wgpu.TextureViewDimension1D,
	"texture_2d":       wgpu.TextureViewDimension2D,
	"texture_2d_array": wgpu.TextureViewDimension2DArray,
	"texture_3d":       wgpu.TextureViewDimension3D,
	"texture_cube":     wgpu.TextureViewDimensionCube,
}

var wgslSampleTypeMap = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

var (
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex      = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex       = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex         = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)
	vertexEntryRegex   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)

	// resourceDeclRegex captures group, binding, address space, name and type from
	// `@group(1) @binding(0) var<uniform> camera: CameraUniform;` and handle types without a space.
	resourceDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseEntryPoints returns every function name declared with the given stage attribute.
//
// Parameters:
//   - source: WGSL source with comments stripped
//   - stage: wgpu.ShaderStageVertex or wgpu.ShaderStageFragment
//
// Returns:
//   - []string: entry point names in declaration order
func parseEntryPoints(source string, stage wgpu.ShaderStage) []string {
	re := vertexEntryRegex
	if stage == wgpu.ShaderStageFragment {
		re = fragmentEntryRegex
	}
	var names []string
	for _, m := range re.FindAllStringSubmatch(source, -1) {
		names = append(names, m[1])
	}
	return names
}

// parseResources extracts every bound resource declaration.
func parseResources(source string) []resourceDecl {
	matches := resourceDeclRegex.FindAllStringSubmatch(source, -1)
	decls := make([]resourceDecl, 0, len(matches))
	for _, m := range matches {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		decls = append(decls, resourceDecl{
			group:        group,
			binding:      binding,
			addressSpace: strings.TrimSpace(m[3]),
			name:         m[4],
			typeName:     strings.TrimSpace(m[5]),
		})
	}
	return decls
}

// parseBindGroupLayouts builds layout descriptors for every group the source declares.
// Visibility is left unset because one module serves both stages; callers compare
// resource kinds only. Uniform buffers get MinBindingSize from the bound struct's layout.
//
// Parameters:
//   - source: WGSL source with comments stripped
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group then binding
func parseBindGroupLayouts(source string) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	sizes := computeStructLayouts(parseStructBlocks(source))
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, d := range parseResources(source) {
		entry := classifyResource(d)
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if l, ok := resolveTypeLayout(d.typeName, sizes); ok {
				entry.Buffer.MinBindingSize = l.size
			}
		}
		groups[d.group] = append(groups[d.group], entry)
		if names[d.group] == nil {
			names[d.group] = make(map[int]string)
		}
		names[d.group][d.binding] = d.name
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, names
}

func classifyResource(d resourceDecl) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: uint32(d.binding)}

	switch {
	case d.addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(d.addressSpace, "storage"):
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		if strings.Contains(d.addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		}
	case d.typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case d.typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(d.typeName, "texture_"):
		base, param, _ := strings.Cut(d.typeName, "<")
		param = strings.TrimSpace(strings.TrimSuffix(param, ">"))
		if dim, ok := wgslTextureDimMap[base]; ok {
			entry.Texture.ViewDimension = dim
		}
		if st, ok := wgslSampleTypeMap[param]; ok {
			entry.Texture.SampleType = st
		}
		entry.Texture.Multisampled = strings.Contains(base, "multisampled")
	}
	return entry
}

// parseVertexInput finds the first struct that is a pure vertex input (@location members,
// no @builtin) and lays its members out sequentially in declaration order.
//
// Parameters:
//   - source: WGSL source with comments stripped
//
// Returns:
//   - wgpu.VertexBufferLayout: the packed layout
//   - bool: false if no vertex input struct exists or a member type is not a vertex format
func parseVertexInput(source string) (wgpu.VertexBufferLayout, bool) {
	for _, ps := range parseStructBlocks(source) {
		if !isVertexInputStruct(ps) {
			continue
		}
		attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
		var offset uint64
		for _, f := range ps.fields {
			info, ok := wgslVertexFormatMap[f.typeName]
			if !ok {
				return wgpu.VertexBufferLayout{}, false
			}
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         info.format,
				Offset:         offset,
				ShaderLocation: uint32(f.location),
			})
			offset += info.size
		}
		return wgpu.VertexBufferLayout{
			ArrayStride: offset,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		}, true
	}
	return wgpu.VertexBufferLayout{}, false
}

func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, m := range matches {
		structs = append(structs, parsedStruct{name: m[1], fields: parseStructFields(m[2])})
	}
	return structs
}

func parseStructFields(body string) []parsedField {
	var fields []parsedField
	for _, member := range splitAtTopLevelCommas(body) {
		member = strings.TrimSpace(member)
		fm := fieldRegex.FindStringSubmatch(member)
		if member == "" || fm == nil {
			continue
		}
		field := parsedField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(member),
		}
		if lm := locationRegex.FindStringSubmatch(member); lm != nil {
			field.location, _ = strconv.Atoi(lm[1])
		}
		fields = append(fields, field)
	}
	return fields
}

// computeStructLayouts resolves struct sizes with WGSL alignment rules, repeating until no
// more structs resolve so that structs nested in later structs are handled.
func computeStructLayouts(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	for progress := true; progress; {
		progress = false
		for _, ps := range structs {
			if _, done := resolved[ps.name]; done {
				continue
			}
			if l, ok := structLayout(ps, resolved); ok {
				resolved[ps.name] = l
				progress = true
			}
		}
	}
	return resolved
}

func structLayout(ps parsedStruct, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	var offset uint64
	maxAlign := uint64(1)
	for _, f := range ps.fields {
		if f.isBuiltin {
			continue
		}
		l, ok := resolveTypeLayout(f.typeName, known)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = roundUpAlign(l.align, offset) + l.size
		maxAlign = max(maxAlign, l.align)
	}
	return wgslTypeLayout{size: roundUpAlign(maxAlign, offset), align: maxAlign}, true
}

// resolveTypeLayout looks a type up among primitives, known structs and fixed-size arrays.
func resolveTypeLayout(typeName string, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if l, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}
	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return wgslTypeLayout{}, false
	}
	elem, count, ok := strings.Cut(strings.TrimSuffix(inner, ">"), ",")
	if !ok {
		return wgslTypeLayout{}, false
	}
	el, ok := resolveTypeLayout(strings.TrimSpace(elem), known)
	if !ok {
		return wgslTypeLayout{}, false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{size: n * roundUpAlign(el.align, el.size), align: el.align}, true
}

func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// splitAtTopLevelCommas splits a struct body at commas outside angle brackets, so
// array<T, N> stays in one piece.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripComments removes // line comments and nested /* */ block comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch source[i : i+2] {
			case "/*":
				depth++
				i++
				continue
			case "*/":
				if depth > 0 {
					depth--
					i++
					continue
				}
			case "//":
				if depth == 0 {
					for i < len(source) && source[i] != '\n' {
						i++
					}
					if i < len(source) {
						sb.WriteByte('\n')
					}
					continue
				}
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
