package model

// Semantic names a recognized vertex attribute. The mapping from semantic
// to attribute slot is a contract with the shader program: the vertex
// shader must declare matching input locations, which the renderer
// verifies after linking.
type Semantic int

const (
	Position Semantic = iota
	Normal
	TexCoord0
)

// Semantics lists all recognized semantics in slot order.
var Semantics = [...]Semantic{Position, Normal, TexCoord0}

// Slot returns the fixed vertex attribute index for the semantic.
func (s Semantic) Slot() uint32 {
	return uint32(s)
}

// String returns the glTF attribute name for the semantic.
func (s Semantic) String() string {
	switch s {
	case Position:
		return "POSITION"
	case Normal:
		return "NORMAL"
	case TexCoord0:
		return "TEXCOORD_0"
	}
	return "UNKNOWN"
}

// SemanticFromName maps a glTF attribute name to a Semantic. The second
// return value is false for attributes the viewer does not recognize.
func SemanticFromName(name string) (Semantic, bool) {
	switch name {
	case "POSITION":
		return Position, true
	case "NORMAL":
		return Normal, true
	case "TEXCOORD_0":
		return TexCoord0, true
	}
	return 0, false
}
