package bytecode

import (
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/viant/jbind/model"
)

// Constant pool entry tags (JVMS table 4.4-A).
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldRef           = 9
	tagMethodRef          = 10
	tagInterfaceMethodRef = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagInvokeDynamic      = 18
)

type poolEntry struct {
	tag byte
	// ref is the referenced pool slot for class and string entries.
	ref int
	// raw is the undecoded span of a UTF-8 entry.
	raw []byte
	// value is the decoded literal for integer, long, float and double
	// entries.
	value model.Value
}

// ConstantPool holds a class file's constant pool and resolves entries
// lazily on lookup. Decoded UTF-8 strings are cached.
type ConstantPool struct {
	entries []poolEntry
	strings map[int]string
}

// readConstantPool consumes the constant pool from r. Long and double
// entries occupy two slots; the second slot stays unused.
func readConstantPool(r *ByteReader) (*ConstantPool, error) {
	count, err := r.U2()
	if err != nil {
		return nil, err
	}
	pool := &ConstantPool{
		entries: make([]poolEntry, count),
		strings: make(map[int]string),
	}
	for i := 1; i < count; i++ {
		tag, err := r.U1()
		if err != nil {
			return nil, err
		}
		entry := &pool.entries[i]
		entry.tag = byte(tag)
		switch tag {
		case tagUtf8:
			length, err := r.U2()
			if err != nil {
				return nil, err
			}
			if entry.raw, err = r.Bytes(length); err != nil {
				return nil, err
			}
		case tagInteger:
			bits, err := r.U4()
			if err != nil {
				return nil, err
			}
			entry.value = model.IntValue(int32(bits))
		case tagFloat:
			bits, err := r.U4()
			if err != nil {
				return nil, err
			}
			entry.value = model.FloatValue(math.Float32frombits(uint32(bits)))
		case tagLong:
			hi, err := r.U4()
			if err != nil {
				return nil, err
			}
			lo, err := r.U4()
			if err != nil {
				return nil, err
			}
			entry.value = model.LongValue(hi<<32 | lo)
			i++
		case tagDouble:
			hi, err := r.U4()
			if err != nil {
				return nil, err
			}
			lo, err := r.U4()
			if err != nil {
				return nil, err
			}
			entry.value = model.DoubleValue(math.Float64frombits(uint64(hi)<<32 | uint64(lo)))
			i++
		case tagClass, tagString:
			if entry.ref, err = r.U2(); err != nil {
				return nil, err
			}
		case tagFieldRef, tagMethodRef, tagInterfaceMethodRef, tagNameAndType, tagInvokeDynamic:
			if err := r.Skip(4); err != nil {
				return nil, err
			}
		case tagMethodHandle:
			if err := r.Skip(3); err != nil {
				return nil, err
			}
		case tagMethodType:
			if err := r.Skip(2); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("constant pool slot %d: unsupported tag %d", i, tag)
		}
	}
	return pool, nil
}

// Utf8 resolves the UTF-8 entry at index i.
func (p *ConstantPool) Utf8(i int) (string, error) {
	if s, ok := p.strings[i]; ok {
		return s, nil
	}
	entry, err := p.entry(i, tagUtf8)
	if err != nil {
		return "", err
	}
	s, err := decodeModifiedUTF8(entry.raw)
	if err != nil {
		return "", fmt.Errorf("constant pool slot %d: %w", i, err)
	}
	p.strings[i] = s
	return s, nil
}

// ClassInfo resolves the class entry at index i to its internal-form
// (slash-separated) name.
func (p *ConstantPool) ClassInfo(i int) (string, error) {
	entry, err := p.entry(i, tagClass)
	if err != nil {
		return "", err
	}
	return p.Utf8(entry.ref)
}

// Constant resolves the entry at index i to a typed literal value.
func (p *ConstantPool) Constant(i int) (model.Value, error) {
	if i <= 0 || i >= len(p.entries) {
		return nil, fmt.Errorf("constant pool index %d out of range", i)
	}
	entry := &p.entries[i]
	if entry.tag == tagString {
		s, err := p.Utf8(entry.ref)
		if err != nil {
			return nil, err
		}
		return model.StringValue(s), nil
	}
	if entry.value == nil {
		return nil, fmt.Errorf("constant pool slot %d: tag %d is not a constant", i, entry.tag)
	}
	return entry.value, nil
}

func (p *ConstantPool) entry(i int, tag byte) (*poolEntry, error) {
	if i <= 0 || i >= len(p.entries) {
		return nil, fmt.Errorf("constant pool index %d out of range", i)
	}
	entry := &p.entries[i]
	if entry.tag != tag {
		return nil, fmt.Errorf("constant pool slot %d: tag %d, want %d", i, entry.tag, tag)
	}
	return entry, nil
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8: NUL and code points
// up to U+07FF use two bytes, BMP code points three, and supplementary code
// points a six-byte surrogate pair encoding.
func decodeModifiedUTF8(data []byte) (string, error) {
	units := make([]uint16, 0, len(data))
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xe0 == 0xc0:
			if i+2 > len(data) {
				return "", fmt.Errorf("incomplete 2-byte sequence at %d", i)
			}
			units = append(units, uint16(c&0x1f)<<6|uint16(data[i+1]&0x3f))
			i += 2
		case c&0xf0 == 0xe0:
			if i+3 > len(data) {
				return "", fmt.Errorf("incomplete 3-byte sequence at %d", i)
			}
			units = append(units,
				uint16(c&0x0f)<<12|uint16(data[i+1]&0x3f)<<6|uint16(data[i+2]&0x3f))
			i += 3
		default:
			return "", fmt.Errorf("malformed modified UTF-8 byte 0x%02x at %d", c, i)
		}
	}
	return string(utf16.Decode(units)), nil
}
