package pipeline

import (
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/models"
	"github.com/taigrr/softpipe/pkg/render"
)

// Object is a placed instance of a mesh. Several objects may share one mesh.
type Object struct {
	Mesh    *models.Mesh
	Texture *render.Texture // Optional; textured modes fall back to fill

	Scale       math3d.Vec3
	Rotation    math3d.Vec3 // Euler angles in radians
	Translation math3d.Vec3
}

// NewObject places mesh at the origin with unit scale.
func NewObject(mesh *models.Mesh, tex *render.Texture) *Object {
	return &Object{
		Mesh:    mesh,
		Texture: tex,
		Scale:   math3d.V3(1, 1, 1),
	}
}

// WorldMatrix returns T·Rx·Ry·Rz·S: scale first, then rotate around Z, Y
// and X, then translate.
func (o *Object) WorldMatrix() math3d.Mat4 {
	return math3d.Translate(o.Translation).
		Mul(math3d.RotateX(o.Rotation.X)).
		Mul(math3d.RotateY(o.Rotation.Y)).
		Mul(math3d.RotateZ(o.Rotation.Z)).
		Mul(math3d.Scale(o.Scale))
}

// Bounds returns the model-space bounding box of the mesh.
func (o *Object) Bounds() render.AABB {
	return render.NewAABB(o.Mesh.BoundsMin, o.Mesh.BoundsMax)
}
