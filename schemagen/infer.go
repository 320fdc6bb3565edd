package schemagen

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.jsondoc.dev/jsondoc/node"
)

// JSON Schema type constants.
const (
	typeNull    = "null"
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// Generate infers a Draft 7 JSON Schema describing root's shape.
func Generate(root *node.Node) *jsonschema.Schema {
	s := inferSchema(root)
	s.Schema = "http://json-schema.org/draft-07/schema#"

	return s
}

func inferSchema(n *node.Node) *jsonschema.Schema {
	switch n.Kind() {
	case node.KindNull:
		return &jsonschema.Schema{Type: typeNull}
	case node.KindBoolean:
		return &jsonschema.Schema{Type: typeBoolean}
	case node.KindInteger:
		return &jsonschema.Schema{Type: typeInteger}
	case node.KindNumber:
		return &jsonschema.Schema{Type: typeNumber}
	case node.KindString:
		return &jsonschema.Schema{Type: typeString}
	case node.KindArray:
		return inferArray(n)
	case node.KindObject:
		return inferObject(n)
	default:
		return &jsonschema.Schema{}
	}
}

func inferArray(n *node.Node) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: typeArray}

	items := n.Items()
	if len(items) == 0 {
		return schema
	}

	itemSchema := inferSchema(items[0])
	for _, it := range items[1:] {
		itemSchema = widenSchema(itemSchema, inferSchema(it))
	}

	schema.Items = itemSchema

	return schema
}

func inferObject(n *node.Node) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema, n.ObjectLen()),
	}

	for _, m := range n.Members() {
		name := m.Handle.Name()
		schema.Properties[name] = inferSchema(m.Value)
		schema.Required = append(schema.Required, name)
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}

	return schema
}

// widenSchema merges two element schemas within the same array into one.
// Any two object element schemas, or any two array element schemas, fall
// back to an unconstrained schema without comparing their shapes, rather
// than attempting a structural merge --
// array items describe "what every element looks like", not a union of
// every element seen, and a looser match is more useful than asserting a
// compatible-looking structure that happens to not fit every element.
func widenSchema(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a.Type == b.Type {
		if a.Type == typeObject || a.Type == typeArray {
			return &jsonschema.Schema{}
		}

		return a
	}

	widened := widenType(a.Type, b.Type)
	if widened == "" {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Type: widened}
}

// widenType returns the widened type when merging two type strings, or ""
// (no constraint) for incompatible types. Integer and number widen to
// number, since a mixed-number array is still usefully constrained.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}
