package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema"
)

// schemaFile is the YAML layout of --schema:
//
//	root: Vault
//	types:
//	  Vault: struct { authority: pubkey, deposits: vec<Deposit> }
//	  Deposit: struct { amount: u64, slot: u64 }
type schemaFile struct {
	Types map[string]string `yaml:"types"`
	Root  string            `yaml:"root"`
}

func loadSchema(path string) (*schema.Registry, string, error) {
	reg := schema.NewRegistry()
	if path == "" {
		return reg, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Load("read schema", err)
	}
	return parseSchema(data)
}

func parseSchema(data []byte) (*schema.Registry, string, error) {
	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", errors.Load("parse schema YAML", err)
	}
	reg := schema.NewRegistry()
	for name, expr := range f.Types {
		if err := reg.DefineExpr(name, expr); err != nil {
			return nil, "", err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, "", err
	}
	if f.Root != "" {
		if _, ok := reg.Lookup(f.Root); !ok {
			return nil, "", errors.NotFound(errors.PhaseSchema, "root type", f.Root)
		}
	}
	return reg, f.Root, nil
}

// resolveType returns the registered type called name, or parses name as an
// inline expression whose references resolve against reg.
func resolveType(reg *schema.Registry, name string) (*schema.Type, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseSchema, "no type given: pass --type or set root in the schema file")
	}
	if t, ok := reg.Lookup(name); ok {
		return t, nil
	}
	return schema.Parse(name)
}
