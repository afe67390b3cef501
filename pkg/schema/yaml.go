package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile is the YAML document shape for a user-supplied object model.
type schemaFile struct {
	Objects []objectFile `yaml:"objects"`
}

type objectFile struct {
	Name     string      `yaml:"name"`
	Table    string      `yaml:"table,omitempty"`
	Label    string      `yaml:"label,omitempty"`
	Fields   []fieldFile `yaml:"fields"`
	Children []childFile `yaml:"children,omitempty"`
}

type fieldFile struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Column       string   `yaml:"column,omitempty"`
	References   []string `yaml:"references,omitempty"`
	Relationship string   `yaml:"relationship,omitempty"`
	Polymorphic  bool     `yaml:"polymorphic,omitempty"`
	Length       int      `yaml:"length,omitempty"`
	Precision    int      `yaml:"precision,omitempty"`
	Scale        int      `yaml:"scale,omitempty"`
	Required     bool     `yaml:"required,omitempty"`
	Picklist     []string `yaml:"picklist,omitempty"`
}

type childFile struct {
	Name   string `yaml:"name"`
	Object string `yaml:"object"`
	Field  string `yaml:"field"`
}

// Load reads a YAML object model.
func Load(r io.Reader) (*Schema, error) {
	var file schemaFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	s := New()
	for _, of := range file.Objects {
		obj := NewObject(of.Name)
		if of.Table != "" {
			obj.WithTableName(of.Table)
		}
		if of.Label != "" {
			obj.WithLabel(of.Label)
		}
		for _, ff := range of.Fields {
			t, err := ParseFieldType(ff.Type)
			if err != nil {
				return nil, fmt.Errorf("object %s field %s: %w", of.Name, ff.Name, err)
			}
			f := NewField(ff.Name, t)
			if ff.Column != "" {
				f.WithColumnName(ff.Column)
			}
			if ff.Polymorphic {
				f.WithPolymorphicReference(ff.References...)
			} else if len(ff.References) > 0 {
				f.ReferenceTo = ff.References
			}
			if ff.Relationship != "" {
				f.WithRelationshipName(ff.Relationship)
			}
			if ff.Length > 0 {
				f.WithLength(ff.Length)
			}
			if ff.Precision > 0 {
				f.WithPrecision(ff.Precision, ff.Scale)
			}
			if ff.Required {
				f.WithNillable(false)
			}
			if len(ff.Picklist) > 0 {
				f.WithPicklistValues(ff.Picklist...)
			}
			obj.AddField(f)
		}
		for _, cf := range of.Children {
			obj.AddChildRelationship(NewChildRelationship(cf.Name, cf.Object, cf.Field))
		}
		s.AddObject(obj)
	}
	return s, nil
}

// LoadFile reads a YAML object model from disk.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save writes the schema as YAML. Objects and fields are emitted in name
// order, so saving is deterministic.
func (s *Schema) Save(w io.Writer) error {
	file := schemaFile{}
	for _, obj := range s.Objects() {
		of := objectFile{Name: obj.Name}
		if obj.TableName != ToSnakeCase(obj.Name) {
			of.Table = obj.TableName
		}
		if obj.Label != DeriveLabel(obj.Name) {
			of.Label = obj.Label
		}
		for _, f := range obj.Fields() {
			ff := fieldFile{
				Name:         f.Name,
				Type:         f.Type.String(),
				References:   f.ReferenceTo,
				Relationship: f.RelationshipName,
				Polymorphic:  f.IsPolymorphic,
				Length:       f.Length,
				Precision:    f.Precision,
				Scale:        f.Scale,
				Required:     !f.Nillable,
				Picklist:     f.PicklistValues,
			}
			if f.ColumnName != ToSnakeCase(f.Name) {
				ff.Column = f.ColumnName
			}
			of.Fields = append(of.Fields, ff)
		}
		for _, rel := range obj.ChildRelationships {
			of.Children = append(of.Children, childFile{
				Name:   rel.RelationshipName,
				Object: rel.ChildObject,
				Field:  rel.Field,
			})
		}
		file.Objects = append(file.Objects, of)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the schema as YAML to disk.
func (s *Schema) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create schema file: %w", err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
