// Package models defines the shared data structures: the scene-node
// capability surface, the normalized pod field record, catalog schemas,
// the message protocol, and configuration.
package models

// NodeKind discriminates the node shapes the engine cares about.
type NodeKind string

const (
	KindContainer NodeKind = "container"
	KindText      NodeKind = "text"
	KindGeometry  NodeKind = "geometry"
	KindInstance  NodeKind = "instance"
)

// SceneNode is the minimal surface the engine needs from a host-owned
// visual node. The host owns the tree: the engine reads and mutates
// fields on nodes it discovers, but never creates or deletes nodes.
type SceneNode interface {
	Name() string
	Kind() NodeKind
	Visible() bool
	SetVisible(bool)
	Children() []SceneNode
}

// TextNode is a text leaf whose characters can be replaced once the
// fonts covering its character ranges are loaded.
type TextNode interface {
	SceneNode
	Characters() string
	SetCharacters(string)
	// FontFaces reports every face used across the node's character ranges.
	FontFaces() []FontFace
}

// FillableNode can receive an image fill.
type FillableNode interface {
	SceneNode
	SetImageFill(ImageHandle)
}

// InstanceNode is a component instance. Recognition goes through the
// backing component's name (or the parent component-set name).
type InstanceNode interface {
	SceneNode
	ComponentName() string
	SetVariantProperty(name, value string) error
}

// FontFace identifies a font by family and style.
type FontFace struct {
	Family string `yaml:"family" json:"family"`
	Style  string `yaml:"style" json:"style"`
}

// Key returns the identity used by the font cache.
func (f FontFace) Key() string {
	return f.Family + "::" + f.Style
}

// ImageHandle is an opaque reference to a decoded image owned by the host.
type ImageHandle struct {
	Hash string `json:"hash"`
}

// FontLoader is the host's font service.
type FontLoader interface {
	LoadFont(face FontFace) error
}

// ImageFactory turns image payloads into host image handles. FromURL
// offloads the fetch (and any cross-origin concerns) to the host.
type ImageFactory interface {
	FromBytes(data []byte) (ImageHandle, error)
	FromURL(url string) (ImageHandle, error)
}
