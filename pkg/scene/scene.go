// Package scene provides an in-memory implementation of the node
// capability surface. It backs documents loaded from snapshots and the
// test fixtures; a live host bridge would supply its own implementation
// of the same interfaces.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/atlanticwaters/podfill/models"
)

type base struct {
	name     string
	visible  bool
	children []models.SceneNode
}

func (b *base) Name() string                 { return b.name }
func (b *base) Visible() bool                { return b.visible }
func (b *base) SetVisible(v bool)            { b.visible = v }
func (b *base) Children() []models.SceneNode { return b.children }

// Frame is a container node. Frames can carry an image fill themselves,
// which is what the hero-image fallback relies on when a media frame has
// no inner geometry.
type Frame struct {
	base
	fill *models.ImageHandle
}

func NewFrame(name string, children ...models.SceneNode) *Frame {
	return &Frame{base: base{name: name, visible: true, children: children}}
}

func (f *Frame) Kind() models.NodeKind { return models.KindContainer }

func (f *Frame) SetImageFill(h models.ImageHandle) { f.fill = &h }

// Fill returns the applied image fill, if any.
func (f *Frame) Fill() (models.ImageHandle, bool) {
	if f.fill == nil {
		return models.ImageHandle{}, false
	}
	return *f.fill, true
}

// Append adds children in document order.
func (f *Frame) Append(children ...models.SceneNode) *Frame {
	f.children = append(f.children, children...)
	return f
}

// Text is a text leaf.
type Text struct {
	base
	characters string
	faces      []models.FontFace
}

func NewText(name, characters string, faces ...models.FontFace) *Text {
	return &Text{
		base:       base{name: name, visible: true},
		characters: characters,
		faces:      faces,
	}
}

func (t *Text) Kind() models.NodeKind    { return models.KindText }
func (t *Text) Characters() string       { return t.characters }
func (t *Text) SetCharacters(v string)   { t.characters = v }
func (t *Text) FontFaces() []models.FontFace { return t.faces }

// Rect is a fill-capable geometry leaf.
type Rect struct {
	base
	fill *models.ImageHandle
}

func NewRect(name string) *Rect {
	return &Rect{base: base{name: name, visible: true}}
}

func (r *Rect) Kind() models.NodeKind { return models.KindGeometry }

func (r *Rect) SetImageFill(h models.ImageHandle) { r.fill = &h }

func (r *Rect) Fill() (models.ImageHandle, bool) {
	if r.fill == nil {
		return models.ImageHandle{}, false
	}
	return *r.fill, true
}

// Instance is a component instance. Variant properties must be declared
// with DefineVariant before SetVariantProperty accepts them, mirroring
// how a host rejects unknown property names.
type Instance struct {
	base
	component string
	variants  map[string]string
}

func NewInstance(name, component string, children ...models.SceneNode) *Instance {
	return &Instance{
		base:      base{name: name, visible: true, children: children},
		component: component,
	}
}

func (i *Instance) Kind() models.NodeKind { return models.KindInstance }
func (i *Instance) ComponentName() string { return i.component }

// DefineVariant declares a settable variant property.
func (i *Instance) DefineVariant(name, initial string) *Instance {
	if i.variants == nil {
		i.variants = make(map[string]string)
	}
	i.variants[name] = initial
	return i
}

func (i *Instance) SetVariantProperty(name, value string) error {
	if _, ok := i.variants[name]; !ok {
		return fmt.Errorf("instance %q has no variant property %q", i.name, name)
	}
	i.variants[name] = value
	return nil
}

// VariantValue returns the current value of a declared variant property.
func (i *Instance) VariantValue(name string) (string, bool) {
	v, ok := i.variants[name]
	return v, ok
}

func (i *Instance) Append(children ...models.SceneNode) *Instance {
	i.children = append(i.children, children...)
	return i
}

// nodeJSON is the exported shape of a node's state.
type nodeJSON struct {
	Name       string              `json:"name"`
	Kind       models.NodeKind     `json:"kind"`
	Visible    bool                `json:"visible"`
	Characters string              `json:"characters,omitempty"`
	Fill       *models.ImageHandle `json:"fill,omitempty"`
	Component  string              `json:"component,omitempty"`
	Variants   map[string]string   `json:"variants,omitempty"`
	Children   []models.SceneNode  `json:"children,omitempty"`
}

func (f *Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Name: f.name, Kind: f.Kind(), Visible: f.visible,
		Fill: f.fill, Children: f.children,
	})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Name: t.name, Kind: t.Kind(), Visible: t.visible,
		Characters: t.characters,
	})
}

func (r *Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Name: r.name, Kind: r.Kind(), Visible: r.visible,
		Fill: r.fill,
	})
}

func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Name: i.name, Kind: i.Kind(), Visible: i.visible,
		Component: i.component, Variants: i.variants, Children: i.children,
	})
}
