// Package manifest describes dispatchers declaratively: the type hierarchy
// they dispatch over and the signatures registered on each of them.
//
// A manifest can be written in YAML, TOML or HCL; the file extension picks
// the format. In YAML:
//
//	oracle: lattice
//	types:
//	  - name: Number
//	  - name: Integer
//	    parents: [Number]
//	dispatch:
//	  - name: add
//	    impls:
//	      - signature: [Integer, Integer]
//	      - signature: [Number, Number]
//
// With `oracle: go`, type names are Go type expressions, and implementations
// may carry a Go func literal as their body.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-set/v3"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	OracleLattice = "lattice"
	OracleGo      = "go"
)

// File is the decoded form of a manifest
type File struct {
	// Oracle is either OracleLattice, the default, or OracleGo
	Oracle string `yaml:"oracle,omitempty" toml:"oracle" hcl:"oracle,optional"`

	// Types declares the lattice, parents first. Lattice oracle only.
	Types []TypeDecl `yaml:"types,omitempty" toml:"types" hcl:"type,block"`

	// Imports lists the Go packages type expressions and bodies may refer to.
	// Go oracle only.
	Imports []string `yaml:"imports,omitempty" toml:"imports" hcl:"imports,optional"`
	// Interfaces lists Go interface types to suggest in ambiguity warnings,
	// instead of widening to any. Go oracle only.
	Interfaces []string `yaml:"interfaces,omitempty" toml:"interfaces" hcl:"interfaces,optional"`

	Dispatch []DispatchDecl `yaml:"dispatch" toml:"dispatch" hcl:"dispatch,block"`
}

type TypeDecl struct {
	Name string `yaml:"name" toml:"name" hcl:"name,label"`
	// Parents defaults to the root type
	Parents []string `yaml:"parents,omitempty" toml:"parents" hcl:"parents,optional"`
}

type DispatchDecl struct {
	Name  string     `yaml:"name" toml:"name" hcl:"name,label"`
	Impls []ImplDecl `yaml:"impls" toml:"impls" hcl:"impl,block"`
}

type ImplDecl struct {
	Signature []string `yaml:"signature" toml:"signature" hcl:"signature"`
	// Body is Go source for a func literal. Without one, the implementation
	// returns a description of the signature it was registered under.
	Body string `yaml:"body,omitempty" toml:"body" hcl:"body,optional"`
}

// Load reads and decodes the manifest at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read manifest %s", path)
	}
	return Parse(data, path)
}

// Parse decodes data in the format filename's extension names
func Parse(data []byte, filename string) (*File, error) {
	f := &File{}
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, errors.Wrapf(err, "could not parse YAML manifest %s", filename)
		}
	case ".toml":
		if err := toml.Unmarshal(data, f); err != nil {
			return nil, errors.Wrapf(err, "could not parse TOML manifest %s", filename)
		}
	case ".hcl":
		parsed, diags := hclparse.NewParser().ParseHCL(data, filename)
		if diags.HasErrors() {
			return nil, errors.Wrapf(diags, "could not parse HCL manifest %s", filename)
		}
		if diags := gohcl.DecodeBody(parsed.Body, nil, f); diags.HasErrors() {
			return nil, errors.Wrapf(diags, "could not decode HCL manifest %s", filename)
		}
	default:
		return nil, errors.Errorf("unsupported manifest extension %q in %s", ext, filename)
	}
	if err := f.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %s", filename)
	}
	return f, nil
}

// Validate checks what can be checked without building the type hierarchy
func (f *File) Validate() error {
	switch f.Oracle {
	case "":
		f.Oracle = OracleLattice
	case OracleLattice, OracleGo:
	default:
		return errors.Errorf("unknown oracle %q, expected %q or %q", f.Oracle, OracleLattice, OracleGo)
	}

	if f.Oracle == OracleLattice {
		if len(f.Imports) > 0 || len(f.Interfaces) > 0 {
			return errors.New("imports and interfaces need the go oracle")
		}
	} else if len(f.Types) > 0 {
		return errors.New("types can only be declared with the lattice oracle")
	}

	typeNames := set.New[string](len(f.Types))
	for i, decl := range f.Types {
		if strings.TrimSpace(decl.Name) == "" {
			return errors.Errorf("type %d has no name", i)
		}
		if !typeNames.Insert(decl.Name) {
			return errors.Errorf("type %s declared twice", decl.Name)
		}
	}

	dispatchNames := set.New[string](len(f.Dispatch))
	for i, decl := range f.Dispatch {
		if strings.TrimSpace(decl.Name) == "" {
			return errors.Errorf("dispatch %d has no name", i)
		}
		if !dispatchNames.Insert(decl.Name) {
			return errors.Errorf("dispatch %s declared twice", decl.Name)
		}
		for j, impl := range decl.Impls {
			if impl.Body != "" && f.Oracle != OracleGo {
				return errors.Errorf("dispatch %s impl %d: bodies need the go oracle", decl.Name, j)
			}
		}
	}
	return nil
}
