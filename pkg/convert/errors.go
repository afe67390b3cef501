package convert

import "fmt"

// ErrorKind classifies a conversion failure.
type ErrorKind int

const (
	ErrUnknownObject ErrorKind = iota
	ErrUnknownField
	ErrNotARelationship
	ErrNotPolymorphic
	ErrUnknownDateLiteral
	ErrRelationshipDepthExceeded
	ErrUnsupportedFeature
	ErrSchemaRequired
	ErrUnknownChildRelationship
	ErrInvalidExpression
	ErrUnsupportedSoqlFeature
)

// ConversionError is a fatal translation error. Warnings are reported
// separately on the Result and never abort a conversion.
type ConversionError struct {
	Kind    ErrorKind
	Message string
}

func (e *ConversionError) Error() string { return e.Message }

func errUnknownObject(name string) error {
	return &ConversionError{ErrUnknownObject, fmt.Sprintf("Unknown SObject: %s", name)}
}

func errUnknownField(field, object string) error {
	return &ConversionError{ErrUnknownField, fmt.Sprintf("Unknown field '%s' on object '%s'", field, object)}
}

func errNotARelationship(field, object string) error {
	return &ConversionError{ErrNotARelationship, fmt.Sprintf("Field '%s' on object '%s' is not a relationship", field, object)}
}

func errNotPolymorphic(field, object string) error {
	return &ConversionError{ErrNotPolymorphic, fmt.Sprintf("Field '%s' on object '%s' is not polymorphic", field, object)}
}

func errUnknownDateLiteral(literal string) error {
	return &ConversionError{ErrUnknownDateLiteral, fmt.Sprintf("Unknown date literal: %s", literal)}
}

func errRelationshipDepthExceeded(max, actual int) error {
	return &ConversionError{ErrRelationshipDepthExceeded,
		fmt.Sprintf("Relationship depth %d exceeds maximum %d", actual, max)}
}

func errUnsupportedFeature(dialectName, feature string) error {
	return &ConversionError{ErrUnsupportedFeature, fmt.Sprintf("%s does not support %s", dialectName, feature)}
}

func errSchemaRequired(feature string) error {
	return &ConversionError{ErrSchemaRequired, fmt.Sprintf("A schema is required for %s", feature)}
}

func errUnknownChildRelationship(relationship, object string) error {
	return &ConversionError{ErrUnknownChildRelationship,
		fmt.Sprintf("Child relationship '%s' not found on object '%s'", relationship, object)}
}

func errInvalidExpression(detail string) error {
	return &ConversionError{ErrInvalidExpression, fmt.Sprintf("Invalid expression in query: %s", detail)}
}

func errUnsupportedSoqlFeature(feature string) error {
	return &ConversionError{ErrUnsupportedSoqlFeature, fmt.Sprintf("Unsupported SOQL feature: %s", feature)}
}

// WarningKind classifies a non-fatal conversion warning.
type WarningKind int

const (
	WarnForUpdateNotSupported WarningKind = iota
	WarnSalesforceOnlyClause
	WarnPolymorphicWithoutTypeof
	WarnApproximateDateLiteral
	WarnSecurityClauseRemoved
)

// Warning is a non-fatal note recorded during conversion.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string { return w.Message }
