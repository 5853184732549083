package layering

import (
	"github.com/layerforge/layering/document"
)

// LayeringPolicySchema is the reserved schema identifying the control
// document that defines the layer order.
const LayeringPolicySchema = "layering.config/LayeringPolicy/v1"

// loadPolicy locates the unique layering-policy document in docs and
// extracts its ordered layer names.
func loadPolicy(docs []*document.Document) (*document.Document, []string, error) {
	var policy *document.Document

	for _, d := range docs {
		if d.Schema() != LayeringPolicySchema {
			continue
		}

		if policy != nil {
			return nil, nil, &LayeringPolicyNotFoundError{Schema: LayeringPolicySchema}
		}

		policy = d
	}

	if policy == nil {
		return nil, nil, &LayeringPolicyNotFoundError{Schema: LayeringPolicySchema}
	}

	payload, ok := policy.Payload().(map[string]any)
	if !ok {
		return nil, nil, &LayeringPolicyMalformedError{
			Schema: policy.Schema(), Name: policy.Name(), Reason: "data is not a mapping",
		}
	}

	rawOrder, ok := payload["layerOrder"].([]any)
	if !ok {
		return nil, nil, &LayeringPolicyMalformedError{
			Schema: policy.Schema(), Name: policy.Name(), Reason: "data.layerOrder is absent or not a sequence",
		}
	}

	if len(rawOrder) == 0 {
		return nil, nil, &LayeringPolicyMalformedError{
			Schema: policy.Schema(), Name: policy.Name(), Reason: "data.layerOrder is empty",
		}
	}

	seen := make(map[string]bool, len(rawOrder))
	layerOrder := make([]string, 0, len(rawOrder))

	for _, v := range rawOrder {
		s, ok := v.(string)
		if !ok {
			return nil, nil, &LayeringPolicyMalformedError{
				Schema: policy.Schema(), Name: policy.Name(), Reason: "data.layerOrder contains a non-string entry",
			}
		}

		if seen[s] {
			return nil, nil, &LayeringPolicyMalformedError{
				Schema: policy.Schema(), Name: policy.Name(), Reason: "data.layerOrder contains duplicate layer " + s,
			}
		}

		seen[s] = true

		layerOrder = append(layerOrder, s)
	}

	return policy, layerOrder, nil
}
