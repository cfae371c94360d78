package models

// JSONValue is a generic type to represent any JSON value.
// It holds one of: nil, bool, string, json.Number, JSONArray or *JSONObject.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONObject represents a JSON object whose keys keep the order in which
// they were first seen.
type JSONObject struct {
	keys   []string
	values map[string]JSONValue
}

// NewJSONObject returns an empty object.
func NewJSONObject() *JSONObject {
	return &JSONObject{values: make(map[string]JSONValue)}
}

// Set stores value under key. A repeated key keeps its original position and
// takes the new value.
func (o *JSONObject) Set(key string, value JSONValue) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in order.
func (o *JSONObject) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *JSONObject) Len() int {
	return len(o.keys)
}

// Document is one parsed input file.
type Document struct {
	Path string // absolute path of the source file, empty for in-memory input
	Root JSONValue
}

// Object returns the root as an object, if it is one.
func (d Document) Object() (*JSONObject, bool) {
	obj, ok := d.Root.(*JSONObject)
	return obj, ok
}
