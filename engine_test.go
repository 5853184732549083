package layering_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layerforge/layering"
)

func policyDoc(layers ...string) map[string]any {
	order := make([]any, len(layers))
	for i, l := range layers {
		order[i] = l
	}

	return map[string]any{
		"schema":   layering.LayeringPolicySchema,
		"metadata": map[string]any{"name": "policy"},
		"data":     map[string]any{"layerOrder": order},
	}
}

func layeredDoc(schema, name, layer string, abstract bool, labels, selector map[string]any,
	actions []any, data map[string]any,
) map[string]any {
	ld := map[string]any{
		"layer":    layer,
		"abstract": abstract,
		"actions":  actions,
	}
	if selector != nil {
		ld["parentSelector"] = selector
	}

	return map[string]any{
		"schema": schema,
		"metadata": map[string]any{
			"name":               name,
			"labels":             labels,
			"layeringDefinition": ld,
		},
		"data": data,
	}
}

func action(method, path string) map[string]any {
	return map[string]any{"method": method, "path": path}
}

const exampleSchema = "example/Kind/v1"

func TestRender_Scenario1_MergeDot(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": map[string]any{"x": 1, "y": 2}, "c": 9}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("merge", ".")},
			map[string]any{"a": map[string]any{"x": 7, "z": 3}, "b": 4}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	require.Len(t, out, 2)

	site := out[1]
	assert.Equal(t, map[string]any{
		"a": map[string]any{"x": 7, "y": 2, "z": 3},
		"b": 4,
		"c": 9,
	}, site["data"])
}

func TestRender_Scenario2_ReplacePath(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": map[string]any{"x": 1, "y": 2}, "c": 9}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("replace", ".a")},
			map[string]any{"a": map[string]any{"x": 7, "z": 3}, "b": 4}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": map[string]any{"x": 7, "z": 3},
		"c": 9,
	}, out[1]["data"])
}

func TestRender_Scenario3_DeletePath(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": map[string]any{"x": 1, "y": 2}, "c": 9}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("delete", ".a")},
			map[string]any{"a": map[string]any{"x": 7, "z": 3}, "b": 4}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"c": 9}, out[1]["data"])
}

func TestRender_Scenario4_DeleteMissingKeyFails(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": map[string]any{"x": 1, "y": 2}, "c": 9}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("delete", ".b")},
			map[string]any{"a": map[string]any{"x": 7, "z": 3}, "b": 4}),
	}

	_, err := layering.Render(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layering.ErrMissingDocumentKey))
}

func TestRender_Scenario5_ThreeLayers(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "region", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": map[string]any{"x": 1, "y": 2}}),
		layeredDoc(exampleSchema, "region", "region", false,
			map[string]any{"key1": "value1"}, map[string]any{"key1": "value1"},
			[]any{action("replace", ".a")},
			map[string]any{"a": map[string]any{"z": 3}}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("merge", ".")},
			map[string]any{"b": 4}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, map[string]any{"a": map[string]any{"z": 3}, "b": 4}, out[2]["data"])
}

func TestRender_Scenario6_IndeterminateParent(t *testing.T) {
	t.Parallel()

	// Two global documents both carry the label the site document's
	// parentSelector matches on, so the site document has two candidate
	// parents in the layer above it.
	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global-1", "global", false,
			map[string]any{"key1": "value1"}, nil, nil, map[string]any{"a": 1}),
		layeredDoc(exampleSchema, "global-2", "global", false,
			map[string]any{"key1": "value1"}, nil, nil, map[string]any{"a": 2}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("merge", ".")}, map[string]any{}),
	}

	_, err := layering.Render(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layering.ErrIndeterminateDocumentParent))
}

func TestRender_MissingParent(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "region", "site"),
		layeredDoc(exampleSchema, "global", "global", false, nil, nil, nil, map[string]any{"a": 1}),
		layeredDoc(exampleSchema, "site", "site", false,
			map[string]any{"key1": "value1"}, map[string]any{"key1": "value1"},
			[]any{action("merge", ".")}, map[string]any{}),
	}

	_, err := layering.Render(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layering.ErrMissingDocumentParent))
}

func TestRender_MissingPolicy(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		layeredDoc(exampleSchema, "global", "global", false, nil, nil, nil, map[string]any{"a": 1}),
	}

	_, err := layering.Render(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layering.ErrLayeringPolicyNotFound))
}

func TestRender_MalformedPolicy(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		{
			"schema":   layering.LayeringPolicySchema,
			"metadata": map[string]any{"name": "policy"},
			"data":     map[string]any{"somethingElse": 1},
		},
	}

	_, err := layering.Render(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layering.ErrLayeringPolicyMalformed))
}

func TestRender_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil, map[string]any{"a": 1}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("patch", ".")}, map[string]any{"a": 2}),
	}

	_, err := layering.Render(docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, layering.ErrUnsupportedActionMethod))
}

func TestRender_AbstractDocumentKeepsOriginalPayloadButFeedsChildren(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "region", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": 1}),
		layeredDoc(exampleSchema, "region", "region", true,
			map[string]any{"key2": "value2"}, map[string]any{"key1": "value1"},
			[]any{action("merge", ".")},
			map[string]any{"b": 2}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key2": "value2"},
			[]any{action("merge", ".")},
			map[string]any{"c": 3}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// The abstract region document keeps its original data in the output...
	assert.Equal(t, map[string]any{"b": 2}, out[1]["data"])
	// ...but its rendered payload (a merged with b) still reaches its child.
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, out[2]["data"])
}

func TestRender_EmptyActionsCopiesParentUnchanged(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil,
			map[string]any{"a": 1}),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			nil, map[string]any{"b": 2}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, out[1]["data"])
}

func TestRender_PolicyDocumentExcludedFromOutput(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global"),
		layeredDoc(exampleSchema, "global", "global", false, nil, nil, nil, map[string]any{"a": 1}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "global", out[0]["metadata"].(map[string]any)["name"])
}

func TestRender_NonLayeredDocumentPassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	passthrough := map[string]any{
		"schema":   "example/Other/v1",
		"metadata": map[string]any{"name": "untouched"},
		"data":     map[string]any{"z": 1},
	}

	docs := []map[string]any{
		policyDoc("global"),
		layeredDoc(exampleSchema, "global", "global", false, nil, nil, nil, map[string]any{"a": 1}),
		passthrough,
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, map[string]any{"z": 1}, out[1]["data"])
}

func TestRender_DeepCopyProperty_OutputDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	globalData := map[string]any{"a": map[string]any{"x": 1}}

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil, globalData),
		layeredDoc(exampleSchema, "site", "site", false,
			nil, map[string]any{"key1": "value1"},
			[]any{action("merge", ".")}, map[string]any{"b": 2}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)

	inner, ok := globalData["a"].(map[string]any)
	require.True(t, ok)
	inner["x"] = 999

	siteData, ok := out[1]["data"].(map[string]any)
	require.True(t, ok)

	siteA, ok := siteData["a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, siteA["x"], "output must not alias input payload memory")
}

func TestRender_OrderingProperty_LayerOrderThenInputOrder(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		policyDoc("global", "site"),
		layeredDoc(exampleSchema, "site-b", "site", false,
			nil, map[string]any{"key1": "value1"},
			nil, map[string]any{}),
		layeredDoc(exampleSchema, "global", "global", false,
			map[string]any{"key1": "value1"}, nil, nil, map[string]any{}),
		layeredDoc(exampleSchema, "site-a", "site", false,
			nil, map[string]any{"key1": "value1"},
			nil, map[string]any{}),
	}

	out, err := layering.Render(docs)
	require.NoError(t, err)
	require.Len(t, out, 3)

	names := []string{
		out[0]["metadata"].(map[string]any)["name"].(string),
		out[1]["metadata"].(map[string]any)["name"].(string),
		out[2]["metadata"].(map[string]any)["name"].(string),
	}
	assert.Equal(t, []string{"global", "site-b", "site-a"}, names)
}
