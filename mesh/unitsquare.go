package mesh

import "github.com/femtools/weakform/utils"

// NewUnitSquare builds a structured nx x ny triangulation of the unit
// square, each cell split into two triangles. The region of an element is
// taken from regionOf evaluated at the element centroid, so piecewise
// material layouts are one closure away.
func NewUnitSquare(nx, ny int, regionOf func(cx, cy float64) int) (msh *Mesh, err error) {
	var (
		nV     = (nx + 1) * (ny + 1)
		K      = 2 * nx * ny
		vx     = make([]float64, nV)
		vy     = make([]float64, nV)
		conn   = utils.NewIndexMatrix(K, 3)
		region = utils.NewIndexMatrix(K, 1)
		dx     = 1.0 / float64(nx)
		dy     = 1.0 / float64(ny)
	)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			node := j*(nx+1) + i
			vx[node] = float64(i) * dx
			vy[node] = float64(j) * dy
		}
	}
	k := 0
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var (
				v00 = j*(nx+1) + i
				v10 = v00 + 1
				v01 = v00 + nx + 1
				v11 = v01 + 1
			)
			// Lower triangle
			conn.Set(k, 0, v00)
			conn.Set(k, 1, v10)
			conn.Set(k, 2, v11)
			cx := (vx[v00] + vx[v10] + vx[v11]) / 3
			cy := (vy[v00] + vy[v10] + vy[v11]) / 3
			region.Set(k, 0, regionOf(cx, cy))
			k++
			// Upper triangle
			conn.Set(k, 0, v00)
			conn.Set(k, 1, v11)
			conn.Set(k, 2, v01)
			cx = (vx[v00] + vx[v11] + vx[v01]) / 3
			cy = (vy[v00] + vy[v11] + vy[v01]) / 3
			region.Set(k, 0, regionOf(cx, cy))
			k++
		}
	}
	msh, err = NewMesh(Tri3, vx, vy, conn, region)
	return
}
