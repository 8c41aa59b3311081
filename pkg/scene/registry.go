package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned for a scene name with no built-in constructor
var ErrUnknownScene = errors.New("unknown scene")

var builtins = map[string]func() *Scene{
	"default":    NewDefaultScene,
	"spheregrid": NewSphereGridScene,
	"empty":      func() *Scene { return NewEmptyScene("empty") },
}

// NewScene creates a built-in scene by name
func NewScene(name string) (*Scene, error) {
	create, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return create(), nil
}

// BuiltinNames returns the names of all built-in scenes, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
