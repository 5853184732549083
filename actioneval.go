package layering

import (
	"errors"

	"github.com/layerforge/layering/clone"
	"github.com/layerforge/layering/document"
	"github.com/layerforge/layering/merge"
	"github.com/layerforge/layering/path"
)

// keyFault is a lightweight, document-agnostic error raised by applyAction
// when a path resolves to a missing key. The caller (render, which knows
// the document and the action) wraps it into a MissingDocumentKeyError.
type keyFault struct {
	key string
}

func (f *keyFault) Error() string { return "missing key: " + f.key }

// applyAction applies one action to parentRoot (the working copy of the
// currently-rendered parent payload, wrapped as {"data": ...}) using
// childRoot (the child document's own payload, wrapped the same way) as
// the source of values. parentRoot is mutated in place.
func applyAction(action document.Action, childRoot, parentRoot map[string]any) error {
	switch action.Method {
	case document.MethodMerge, document.MethodReplace, document.MethodDelete:
	default:
		return errUnsupportedMethod
	}

	segments := path.Segments(action.Path)

	if action.Method == document.MethodDelete && len(segments) == 1 {
		parentRoot["data"] = map[string]any{}
		return nil
	}

	parentContainer, key, err := path.Resolve(parentRoot, segments)
	if err != nil {
		return &keyFault{key: key}
	}

	childContainer, childKey, err := path.Resolve(childRoot, segments)
	if err != nil {
		return &keyFault{key: childKey}
	}

	switch action.Method {
	case document.MethodMerge:
		return applyMerge(parentContainer, childContainer, key)
	case document.MethodReplace:
		return applyReplace(parentContainer, childContainer, key)
	case document.MethodDelete:
		return applyDelete(parentContainer, key)
	default:
		return errUnsupportedMethod
	}
}

// errUnsupportedMethod is a private sentinel distinguished from the
// exported ErrUnsupportedActionMethod only so applyAction can signal it
// without document context; render() attaches that context.
var errUnsupportedMethod = errors.New("unsupported method")

func applyMerge(parentContainer, childContainer map[string]any, key string) error {
	pv, pOk := parentContainer[key]
	cv, cOk := childContainer[key]

	switch {
	case pOk && cOk:
		pm, pIsMap := pv.(map[string]any)
		cm, cIsMap := cv.(map[string]any)

		if pIsMap && cIsMap {
			merge.Deep(pm, cm)
		}
		// Else: both present but not both mappings — parent wins, no-op.
	case cOk:
		parentContainer[key] = clone.Copy(cv)
	default:
		return &keyFault{key: key}
	}

	return nil
}

func applyReplace(parentContainer, childContainer map[string]any, key string) error {
	cv, cOk := childContainer[key]
	if !cOk {
		return &keyFault{key: key}
	}

	parentContainer[key] = clone.Copy(cv)

	return nil
}

func applyDelete(parentContainer map[string]any, key string) error {
	if _, ok := parentContainer[key]; !ok {
		return &keyFault{key: key}
	}

	delete(parentContainer, key)

	return nil
}
