package layering

import "github.com/layerforge/layering/document"

// node is one layered document's position in the parent/child forest.
// Children are held as an ordered slice on the parent; there are no
// back-pointers, since the renderer passes each parent's rendered payload
// down to its children rather than having children look upward.
type node struct {
	doc      *document.Document
	children []*node
}

// buildForest links every non-top-layer document to exactly one parent in
// the layer immediately above it, and returns the top-layer documents as
// forest roots (in input order), each carrying its attached children.
func buildForest(layerOrder []string, layered []*document.Document) ([]*node, error) {
	validLayer := make(map[string]bool, len(layerOrder))
	for _, l := range layerOrder {
		validLayer[l] = true
	}

	byLayer := make(map[string][]*document.Document)
	nodes := make(map[*document.Document]*node, len(layered))

	for _, d := range layered {
		ld, _ := d.Layering()

		if !validLayer[ld.Layer] {
			return nil, &MissingDocumentParentError{Schema: d.Schema(), Name: d.Name(), Layer: ld.Layer}
		}

		byLayer[ld.Layer] = append(byLayer[ld.Layer], d)
		nodes[d] = &node{doc: d}
	}

	parentCount := make(map[*document.Document]int, len(layered))

	for i := 0; i < len(layerOrder)-1; i++ {
		parents := byLayer[layerOrder[i]]
		children := byLayer[layerOrder[i+1]]

		for _, child := range children {
			cld, _ := child.Layering()
			if len(cld.ParentSelector) != 1 {
				// A well-formed parent selector names exactly one label.
				// A selector of any other cardinality can never produce a
				// unique match, so the document is treated as parentless
				// (surfaced below as MissingDocumentParent).
				continue
			}

			var selKey, selVal string
			for k, v := range cld.ParentSelector {
				selKey, selVal = k, v
			}

			for _, parent := range parents {
				if parent.Schema() != child.Schema() {
					continue
				}

				if parent.Labels()[selKey] != selVal {
					continue
				}

				nodes[parent].children = append(nodes[parent].children, nodes[child])
				parentCount[child]++
			}
		}
	}

	for _, d := range layered {
		ld, _ := d.Layering()
		if ld.Layer == layerOrder[0] {
			continue
		}

		switch count := parentCount[d]; {
		case count == 0:
			return nil, &MissingDocumentParentError{Schema: d.Schema(), Name: d.Name(), Layer: ld.Layer}
		case count >= 2:
			return nil, &IndeterminateDocumentParentError{Schema: d.Schema(), Name: d.Name(), Layer: ld.Layer, Count: count}
		}
	}

	roots := make([]*node, 0, len(byLayer[layerOrder[0]]))
	for _, d := range byLayer[layerOrder[0]] {
		roots = append(roots, nodes[d])
	}

	return roots, nil
}
