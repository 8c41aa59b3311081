package material

import "github.com/df07/go-sphere-raytracer/pkg/core"

// Material describes how a surface looks. It is a small immutable value and is
// copied freely between spheres and hit records.
type Material struct {
	DiffuseColor core.Vec3 // Base reflectance, conceptually [0,1] per channel, not clamped
}

// NewMaterial creates a new material with the given diffuse color
func NewMaterial(diffuseColor core.Vec3) Material {
	return Material{DiffuseColor: diffuseColor}
}

// Diffuse returns the diffuse color
func (m Material) Diffuse() core.Vec3 {
	return m.DiffuseColor
}
