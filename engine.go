package layering

import (
	"fmt"

	"github.com/layerforge/layering/document"
)

// Render renders raw, a set of parsed documents represented as
// map[string]any, according to the single embedded layering-policy
// document, and returns the list of rendered documents with the policy
// document removed.
//
// Render is a pure function over its input: it performs no I/O, and no
// output document aliases memory from any input document.
func Render(raw []map[string]any) ([]map[string]any, error) {
	docs := make([]*document.Document, 0, len(raw))

	for i, r := range raw {
		d, err := document.New(r, i)
		if err != nil {
			return nil, fmt.Errorf("layering: document %d: %w", i, err)
		}

		docs = append(docs, d)
	}

	policy, layerOrder, err := loadPolicy(docs)
	if err != nil {
		return nil, err
	}

	var layered, passthrough []*document.Document

	for _, d := range docs {
		if d == policy {
			continue
		}

		if _, ok := d.Layering(); ok {
			layered = append(layered, d)
		} else {
			passthrough = append(passthrough, d)
		}
	}

	roots, err := buildForest(layerOrder, layered)
	if err != nil {
		return nil, err
	}

	if err := renderForest(roots); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(layered)+len(passthrough))

	for _, layer := range layerOrder {
		for _, d := range layered {
			ld, _ := d.Layering()
			if ld.Layer != layer {
				continue
			}

			out = append(out, d.Output())
		}
	}

	for _, d := range passthrough {
		out = append(out, d.Output())
	}

	return out, nil
}
