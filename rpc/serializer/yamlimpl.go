package serializer

import (
	"github.com/goccy/go-yaml"
)

// NewYAMLSerializer creates a new serializer using yaml encoding
func NewYAMLSerializer() IResultSerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the IResultSerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IResultSerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (y yamlSerializerImpl) Deserialize(b []byte, v interface{}) error {
	return yaml.Unmarshal(b, v)
}
