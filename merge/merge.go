// Package merge implements the deep-merge primitive used by the merge
// action: recursively folding one mapping into another, with src winning
// at any leaf conflict and dst-only keys passed through untouched.
package merge

import "github.com/layerforge/layering/clone"

// Deep merges src into dst in place.
//
//   - If dst[k] and src[k] are both maps, Deep recurses into them.
//   - If dst[k] is absent, a deep copy of src[k] is written into dst[k].
//   - Otherwise (a leaf conflict, either side not a mapping) src[k]
//     overwrites dst[k]: a deep copy of src[k] is written into dst[k].
//
// Keys present only in dst are left untouched. Sequences and scalars are
// treated as opaque values; there is no element-wise merging of slices.
func Deep(dst, src map[string]any) {
	for k, sv := range src {
		dv, exists := dst[k]
		if !exists {
			dst[k] = clone.Copy(sv)
			continue
		}

		dm, dstIsMap := dv.(map[string]any)
		sm, srcIsMap := sv.(map[string]any)

		if dstIsMap && srcIsMap {
			Deep(dm, sm)
			continue
		}

		dst[k] = clone.Copy(sv)
	}
}
