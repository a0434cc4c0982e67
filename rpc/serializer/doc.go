// Package serializer renders RPC results for the command line. It defines a common
// interface and one implementation per output format.
//
// Key Components:
//
//   - IResultSerializer: Core interface that all serializer implementations must satisfy.
//
//   - jsonSerializerImpl: Indented JSON, suitable for piping into other tools.
//
//   - yamlSerializerImpl: YAML encoding based on github.com/goccy/go-yaml.
//
//   - textSerializerImpl: "key: value" lines with highlighted keys. Lists of records
//     are printed as blocks separated by an empty line. This format is write only.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	out := serializer.NewYAMLSerializer()
//	data, err := out.Serialize(records)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(string(data))
package serializer
