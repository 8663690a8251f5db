package model

// Flag is a bitset of class, field and method access flags. Values below
// 0x10000 use the class file encoding (JVMS table 4.1-A); higher bits are
// source-only markers recorded by the parser and never written to class
// files.
type Flag int

const (
	FlagPublic    Flag = 0x0001
	FlagPrivate   Flag = 0x0002
	FlagProtected Flag = 0x0004
	FlagStatic    Flag = 0x0008
	FlagFinal     Flag = 0x0010
	FlagSuper     Flag = 0x0020

	FlagSynchronized Flag = 0x0020
	FlagVolatile     Flag = 0x0040
	FlagBridge       Flag = 0x0040
	FlagTransient    Flag = 0x0080
	FlagVarargs      Flag = 0x0080
	FlagNative       Flag = 0x0100
	FlagInterface    Flag = 0x0200
	FlagAbstract     Flag = 0x0400
	FlagStrict       Flag = 0x0800
	FlagSynthetic    Flag = 0x1000
	FlagAnnotation   Flag = 0x2000
	FlagEnum         Flag = 0x4000

	// FlagDefault marks a default interface method.
	FlagDefault Flag = 1 << 16
	// FlagEnumImpl marks an enum constant declared with a class body.
	FlagEnumImpl Flag = 1 << 17
)

// Has reports whether all bits of mask are set.
func (f Flag) Has(mask Flag) bool {
	return f&mask == mask
}

// ClassFileFlags returns only the bits that appear in the class file
// encoding, dropping source-only markers.
func (f Flag) ClassFileFlags() Flag {
	return f & 0xffff
}
