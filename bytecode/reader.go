package bytecode

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/viant/jbind/model"
)

const classFileMagic = 0xcafebabe

// Supported major versions (JDK 1.1 through 8).
const (
	minMajorVersion = 45
	maxMajorVersion = 52
)

// Read parses the given class file bytes into a ClassFile.
func Read(data []byte) (*ClassFile, error) {
	reader := &classReader{r: NewByteReader(data)}
	return reader.read()
}

type classReader struct {
	r    *ByteReader
	pool *ConstantPool
}

func (c *classReader) read() (*ClassFile, error) {
	magic, err := c.r.U4()
	if err != nil {
		return nil, err
	}
	if magic != classFileMagic {
		return nil, fmt.Errorf("0x%x: %w", magic, ErrBadMagic)
	}
	minor, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	major, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	if major < minMajorVersion || major > maxMajorVersion {
		return nil, fmt.Errorf("%d.%d: %w", major, minor, ErrBadVersion)
	}
	if c.pool, err = readConstantPool(c.r); err != nil {
		return nil, err
	}
	access, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	thisIndex, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	thisClass, err := c.pool.ClassInfo(thisIndex)
	if err != nil {
		return nil, err
	}
	superIndex, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var superClass string
	if superIndex != 0 {
		if superClass, err = c.pool.ClassInfo(superIndex); err != nil {
			return nil, err
		}
	}
	interfaceCount, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var interfaces []string
	for i := 0; i < interfaceCount; i++ {
		index, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		name, err := c.pool.ClassInfo(index)
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, name)
	}

	fields, err := c.readFields()
	if err != nil {
		return nil, err
	}
	methods, err := c.readMethods()
	if err != nil {
		return nil, err
	}

	file := &ClassFile{
		AccessFlags: model.Flag(access),
		Name:        thisClass,
		SuperClass:  superClass,
		Interfaces:  interfaces,
		Fields:      fields,
		Methods:     methods,
	}
	attributeCount, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	for i := 0; i < attributeCount; i++ {
		nameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		name, err := c.pool.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		switch name {
		case "RuntimeVisibleAnnotations":
			if file.Annotations, err = c.readAnnotations(file.AccessFlags); err != nil {
				return nil, err
			}
		case "Signature":
			if file.Signature, err = c.readSignature(); err != nil {
				return nil, err
			}
		case "InnerClasses":
			if file.InnerClasses, err = c.readInnerClasses(thisClass); err != nil {
				return nil, err
			}
		default:
			if err := c.skipAttribute(); err != nil {
				return nil, err
			}
		}
	}
	return file, nil
}

func (c *classReader) skipAttribute() error {
	length, err := c.r.U4()
	if err != nil {
		return err
	}
	return c.r.Skip(int(length))
}

// readSignature reads a Signature attribute.
func (c *classReader) readSignature() (string, error) {
	if _, err := c.r.U4(); err != nil {
		return "", err
	}
	index, err := c.r.U2()
	if err != nil {
		return "", err
	}
	return c.pool.Utf8(index)
}

// readInnerClasses reads an InnerClasses attribute, retaining only the
// records that mention thisClass as either inner or outer class.
func (c *classReader) readInnerClasses(thisClass string) ([]InnerClass, error) {
	if _, err := c.r.U4(); err != nil {
		return nil, err
	}
	count, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var records []InnerClass
	for i := 0; i < count; i++ {
		innerIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		inner, err := c.pool.ClassInfo(innerIndex)
		if err != nil {
			return nil, err
		}
		outerIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		var outer string
		if outerIndex != 0 {
			if outer, err = c.pool.ClassInfo(outerIndex); err != nil {
				return nil, err
			}
		}
		nameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		var innerName string
		if nameIndex != 0 {
			if innerName, err = c.pool.Utf8(nameIndex); err != nil {
				return nil, err
			}
		}
		access, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		if inner == thisClass || outer == thisClass {
			records = append(records, InnerClass{
				InnerClass: inner,
				OuterClass: outer,
				InnerName:  innerName,
				Access:     model.Flag(access),
			})
		}
	}
	return records, nil
}

// readAnnotations processes a RuntimeVisibleAnnotations attribute. The only
// annotation that affects header compilation is @Retention on annotation
// declarations, so for any other class the attribute is skipped and the
// result is empty.
func (c *classReader) readAnnotations(access model.Flag) ([]AnnotationInfo, error) {
	if !access.Has(model.FlagAnnotation) {
		return nil, c.skipAttribute()
	}
	if _, err := c.r.U4(); err != nil {
		return nil, err
	}
	count, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var annotations []AnnotationInfo
	for i := 0; i < count; i++ {
		annotation, err := c.readAnnotation()
		if err != nil {
			return nil, err
		}
		if annotation != nil {
			annotations = append(annotations, *annotation)
		}
	}
	return annotations, nil
}

// readAnnotation extracts an @Retention annotation, or else consumes the
// annotation and returns nil.
func (c *classReader) readAnnotation() (*AnnotationInfo, error) {
	typeIndex, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	typeName, err := c.pool.Utf8(typeIndex)
	if err != nil {
		return nil, err
	}
	retention := typeName == retentionDescriptor
	pairCount, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var result *AnnotationInfo
	for i := 0; i < pairCount; i++ {
		nameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		key, err := c.pool.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		value, err := c.readElementValue(retention && key == "value")
		if err != nil {
			return nil, err
		}
		if value != nil {
			if result != nil {
				log.WithFields(log.Fields{
					"annotation": typeName,
					"key":        key,
				}).Warn("duplicate annotation element value, keeping the last")
			}
			result = &AnnotationInfo{
				TypeName:       typeName,
				RuntimeVisible: true,
				Elements:       map[string]ElementValue{key: value},
			}
		}
	}
	return result, nil
}

// readElementValue extracts the enum constant value of @Retention when
// wanted is true, or else consumes the element value and returns nil.
func (c *classReader) readElementValue(wanted bool) (ElementValue, error) {
	tag, err := c.r.U1()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		if _, err := c.r.U2(); err != nil {
			return nil, err
		}
	case 'e':
		typeNameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		constNameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		if wanted {
			typeName, err := c.pool.Utf8(typeNameIndex)
			if err != nil {
				return nil, err
			}
			if typeName == retentionPolicyDescriptor {
				constName, err := c.pool.Utf8(constNameIndex)
				if err != nil {
					return nil, err
				}
				return EnumConstValue{TypeName: typeName, ConstName: constName}, nil
			}
		}
	case 'c':
		if _, err := c.r.U2(); err != nil {
			return nil, err
		}
	case '@':
		if _, err := c.readAnnotation(); err != nil {
			return nil, err
		}
	case '[':
		count, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			if _, err := c.readElementValue(false); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%q: %w", rune(tag), ErrBadTag)
	}
	return nil, nil
}

// readFields reads the field table. The only attribute consumed per field
// is ConstantValue.
func (c *classReader) readFields() ([]FieldInfo, error) {
	count, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var fields []FieldInfo
	for i := 0; i < count; i++ {
		access, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		nameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		name, err := c.pool.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		descriptorIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		descriptor, err := c.pool.Utf8(descriptorIndex)
		if err != nil {
			return nil, err
		}
		attributeCount, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		var value model.Value
		for j := 0; j < attributeCount; j++ {
			attrIndex, err := c.r.U2()
			if err != nil {
				return nil, err
			}
			attrName, err := c.pool.Utf8(attrIndex)
			if err != nil {
				return nil, err
			}
			if attrName != "ConstantValue" {
				if err := c.skipAttribute(); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := c.r.U4(); err != nil {
				return nil, err
			}
			valueIndex, err := c.r.U2()
			if err != nil {
				return nil, err
			}
			if value, err = c.pool.Constant(valueIndex); err != nil {
				return nil, err
			}
		}
		fields = append(fields, FieldInfo{
			Access:     model.Flag(access),
			Name:       name,
			Descriptor: descriptor,
			Value:      value,
		})
	}
	return fields, nil
}

// readMethods reads the method table, consuming Exceptions and Signature
// attributes and skipping everything else.
func (c *classReader) readMethods() ([]MethodInfo, error) {
	count, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var methods []MethodInfo
	for i := 0; i < count; i++ {
		access, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		nameIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		name, err := c.pool.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		descriptorIndex, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		descriptor, err := c.pool.Utf8(descriptorIndex)
		if err != nil {
			return nil, err
		}
		attributeCount, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		method := MethodInfo{
			Access:     model.Flag(access),
			Name:       name,
			Descriptor: descriptor,
		}
		for j := 0; j < attributeCount; j++ {
			attrIndex, err := c.r.U2()
			if err != nil {
				return nil, err
			}
			attrName, err := c.pool.Utf8(attrIndex)
			if err != nil {
				return nil, err
			}
			switch attrName {
			case "Exceptions":
				if method.Exceptions, err = c.readExceptions(); err != nil {
					return nil, err
				}
			case "Signature":
				if method.Signature, err = c.readSignature(); err != nil {
					return nil, err
				}
			default:
				if err := c.skipAttribute(); err != nil {
					return nil, err
				}
			}
		}
		methods = append(methods, method)
	}
	return methods, nil
}

// readExceptions reads an Exceptions attribute.
func (c *classReader) readExceptions() ([]string, error) {
	if _, err := c.r.U4(); err != nil {
		return nil, err
	}
	count, err := c.r.U2()
	if err != nil {
		return nil, err
	}
	var exceptions []string
	for i := 0; i < count; i++ {
		index, err := c.r.U2()
		if err != nil {
			return nil, err
		}
		name, err := c.pool.ClassInfo(index)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, name)
	}
	return exceptions, nil
}
