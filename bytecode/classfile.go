package bytecode

import "github.com/viant/jbind/model"

// Retention annotation descriptors recognized by the reader.
const (
	retentionDescriptor       = "Ljava/lang/annotation/Retention;"
	retentionPolicyDescriptor = "Ljava/lang/annotation/RetentionPolicy;"
)

// ClassFile is the header-relevant content of one parsed class file.
type ClassFile struct {
	AccessFlags model.Flag
	// Name is the internal-form (slash-separated) binary name.
	Name string
	// Signature is the generic signature, or empty when absent.
	Signature string
	// SuperClass is the internal-form superclass name; empty only for the
	// root Object class.
	SuperClass string
	// Interfaces lists implemented interface names in declaration order.
	Interfaces []string
	Fields     []FieldInfo
	Methods    []MethodInfo
	// InnerClasses holds only the records that mention this class.
	InnerClasses []InnerClass
	// Annotations holds retention-relevant annotations; empty unless this
	// class is an annotation declaration carrying @Retention.
	Annotations []AnnotationInfo
}

// FieldInfo is the header-relevant content of one field.
type FieldInfo struct {
	Access     model.Flag
	Name       string
	Descriptor string
	Signature  string
	// Value is the ConstantValue literal, or nil.
	Value model.Value
}

// MethodInfo is the header-relevant content of one method.
type MethodInfo struct {
	Access     model.Flag
	Name       string
	Descriptor string
	Signature  string
	// Exceptions lists thrown class names in declaration order.
	Exceptions []string
}

// InnerClass is one InnerClasses attribute record. Absent outer-class and
// inner-name entries are empty strings.
type InnerClass struct {
	InnerClass string
	OuterClass string
	InnerName  string
	Access     model.Flag
}

// AnnotationInfo is a parsed annotation with its retained element values.
type AnnotationInfo struct {
	// TypeName is the annotation type descriptor,
	// e.g. Ljava/lang/annotation/Retention;.
	TypeName string
	// RuntimeVisible is true for annotations read from
	// RuntimeVisibleAnnotations.
	RuntimeVisible bool
	Elements       map[string]ElementValue
}

// ElementValue is an annotation element value. The reader retains only
// enum constant values of @Retention.
type ElementValue interface {
	elementValue()
}

// EnumConstValue is an enum constant element value.
type EnumConstValue struct {
	TypeName  string
	ConstName string
}

func (EnumConstValue) elementValue() {}
