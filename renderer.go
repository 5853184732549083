package layering

import (
	"errors"

	"github.com/layerforge/layering/clone"
	"github.com/layerforge/layering/document"
)

// renderForest walks every root's subtree parent-before-child, setting
// each layered document's rendered payload as it goes.
func renderForest(roots []*node) error {
	for _, root := range roots {
		root.doc.SetRendered(clone.Copy(root.doc.Payload()))

		if err := renderChildren(root); err != nil {
			return err
		}
	}

	return nil
}

func renderChildren(parent *node) error {
	parentRendered, _ := parent.doc.Rendered()

	for _, child := range parent.children {
		ld, _ := child.doc.Layering()

		working, err := applyActions(child.doc, ld.Actions, parentRendered)
		if err != nil {
			return err
		}

		child.doc.SetRendered(working)

		if err := renderChildren(child); err != nil {
			return err
		}
	}

	return nil
}

// applyActions starts from a deep copy of parentRendered and applies doc's
// actions against it in order, each action observing the mutation of the
// previous one, per P1.
func applyActions(doc *document.Document, actions []document.Action, parentRendered any) (any, error) {
	parentRoot := map[string]any{"data": clone.Copy(parentRendered)}
	childRoot := map[string]any{"data": doc.Payload()}

	for _, action := range actions {
		if err := applyAction(action, childRoot, parentRoot); err != nil {
			var fault *keyFault
			if errors.As(err, &fault) {
				return nil, &MissingDocumentKeyError{
					Schema: doc.Schema(), Name: doc.Name(), Path: action.Path, Key: fault.key,
				}
			}

			if errors.Is(err, errUnsupportedMethod) {
				return nil, &UnsupportedActionMethodError{
					Schema: doc.Schema(), Name: doc.Name(), Method: string(action.Method),
				}
			}

			return nil, err
		}
	}

	return parentRoot["data"], nil
}
