package keys

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a set of key declarations.
type File struct {
	Types []TypeSpec `yaml:"types"`
}

// TypeSpec declares one key and the names of its bases.
type TypeSpec struct {
	Name  string   `yaml:"name"`
	Bases []string `yaml:"bases,omitempty"`
}

// LoadYAML reads a File and defines its types in order.  A base must be
// defined before (or above) the types that name it.
func LoadYAML(u *Universe, r io.Reader) error {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode: %w", err)
	}
	for _, spec := range file.Types {
		if _, err := u.Define(spec.Name, spec.Bases...); err != nil {
			return err
		}
	}
	return nil
}
