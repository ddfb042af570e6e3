// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import (
	"github.com/ipelupessy/fvm/crs"
	"github.com/ipelupessy/fvm/stencil"
)

// Assemble converts a combined stencil atom into a compressed-row sparse
// matrix, scanning rows in (k,j,i,d1) order and, within each row, every
// stencil offset and column dof in (sz,sy,sx,d2) order, with column index
//
//	col = row + (sx-1)*dof + (sy-1)*nx*dof + (sz-1)*nx*ny*dof + (d2-d1)
//
// Entries whose magnitude is at or below the crs drop tolerance are
// omitted from the sparsity pattern by crs.Builder.Put itself.
func Assemble(atom *stencil.Tensor, nx, ny, nz, dof int) *crs.Matrix {
	n := nx * ny * nz * dof
	b := crs.NewBuilder(n, 27*n)

	row := 0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				for d1 := 0; d1 < dof; d1++ {
					b.StartRow(row)
					for sz := 0; sz < 3; sz++ {
						for sy := 0; sy < 3; sy++ {
							for sx := 0; sx < 3; sx++ {
								for d2 := 0; d2 < dof; d2++ {
									v := atom.At(i, j, k, d1, d2, sx, sy, sz)
									col := row + (sx-1)*dof + (sy-1)*nx*dof + (sz-1)*nx*ny*dof + (d2 - d1)
									b.Put(col, v)
								}
							}
						}
					}
					b.EndRow()
					row++
				}
			}
		}
	}

	return b.Finish()
}
