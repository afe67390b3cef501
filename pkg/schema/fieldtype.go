package schema

import "fmt"

// FieldType enumerates the supported field types.
type FieldType int

const (
	TypeID FieldType = iota
	TypeString
	TypeTextArea
	TypeLongTextArea
	TypeRichTextArea
	TypeBoolean
	TypeInteger
	TypeDouble
	TypeCurrency
	TypePercent
	TypeDate
	TypeDateTime
	TypeTime
	TypePhone
	TypeEmail
	TypeURL
	TypePicklist
	TypeMultiPicklist
	TypeLookup
	TypeMasterDetail
	TypeReference // polymorphic lookup
	TypeAddress   // compound
	TypeLocation  // geolocation compound
	TypeAuto      // autonumber
)

var fieldTypeNames = map[FieldType]string{
	TypeID:            "Id",
	TypeString:        "String",
	TypeTextArea:      "TextArea",
	TypeLongTextArea:  "LongTextArea",
	TypeRichTextArea:  "RichTextArea",
	TypeBoolean:       "Boolean",
	TypeInteger:       "Integer",
	TypeDouble:        "Double",
	TypeCurrency:      "Currency",
	TypePercent:       "Percent",
	TypeDate:          "Date",
	TypeDateTime:      "DateTime",
	TypeTime:          "Time",
	TypePhone:         "Phone",
	TypeEmail:         "Email",
	TypeURL:           "Url",
	TypePicklist:      "Picklist",
	TypeMultiPicklist: "MultiPicklist",
	TypeLookup:        "Lookup",
	TypeMasterDetail:  "MasterDetail",
	TypeReference:     "Reference",
	TypeAddress:       "Address",
	TypeLocation:      "Location",
	TypeAuto:          "Auto",
}

var fieldTypesByName = func() map[string]FieldType {
	m := make(map[string]FieldType, len(fieldTypeNames))
	for t, name := range fieldTypeNames {
		m[name] = t
	}
	return m
}()

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// ParseFieldType resolves a field type by its canonical name.
func ParseFieldType(name string) (FieldType, error) {
	if t, ok := fieldTypesByName[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown field type %q", name)
}
