package bytecode

import "github.com/viant/jbind/model"

func appendU2(b []byte, v int) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendU4(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// poolBuilder emits constant pool entries for synthetic class files.
type poolBuilder struct {
	data  []byte
	count int
}

func newPoolBuilder() *poolBuilder {
	return &poolBuilder{count: 1}
}

func (p *poolBuilder) slot(size int) int {
	index := p.count
	p.count += size
	return index
}

func (p *poolBuilder) rawUtf8(data []byte) int {
	p.data = append(p.data, tagUtf8)
	p.data = appendU2(p.data, len(data))
	p.data = append(p.data, data...)
	return p.slot(1)
}

func (p *poolBuilder) utf8(s string) int {
	return p.rawUtf8([]byte(s))
}

func (p *poolBuilder) class(name string) int {
	nameIndex := p.utf8(name)
	p.data = append(p.data, tagClass)
	p.data = appendU2(p.data, nameIndex)
	return p.slot(1)
}

func (p *poolBuilder) stringConst(s string) int {
	utfIndex := p.utf8(s)
	p.data = append(p.data, tagString)
	p.data = appendU2(p.data, utfIndex)
	return p.slot(1)
}

func (p *poolBuilder) integer(v int32) int {
	p.data = append(p.data, tagInteger)
	p.data = appendU4(p.data, uint32(v))
	return p.slot(1)
}

func (p *poolBuilder) long(v int64) int {
	p.data = append(p.data, tagLong)
	p.data = appendU4(p.data, uint32(uint64(v)>>32))
	p.data = appendU4(p.data, uint32(uint64(v)))
	return p.slot(2)
}

func (p *poolBuilder) bytes() []byte {
	return append(appendU2(nil, p.count), p.data...)
}

type attribute struct {
	name    string
	payload []byte
}

// classBuilder assembles a complete synthetic class file.
type classBuilder struct {
	pool        *poolBuilder
	minor       int
	major       int
	access      model.Flag
	thisClass   int
	superClass  int
	interfaces  []int
	fieldCount  int
	fields      []byte
	methodCount int
	methods     []byte
	attrCount   int
	attrs       []byte
}

func newClassBuilder(name string) *classBuilder {
	pool := newPoolBuilder()
	return &classBuilder{
		pool:      pool,
		major:     52,
		thisClass: pool.class(name),
	}
}

func (b *classBuilder) setSuper(name string) {
	b.superClass = b.pool.class(name)
}

func (b *classBuilder) addInterface(name string) {
	b.interfaces = append(b.interfaces, b.pool.class(name))
}

func (b *classBuilder) encodeAttributes(out []byte, attrs []attribute) []byte {
	for _, attr := range attrs {
		out = appendU2(out, b.pool.utf8(attr.name))
		out = appendU4(out, uint32(len(attr.payload)))
		out = append(out, attr.payload...)
	}
	return out
}

func (b *classBuilder) addField(access model.Flag, name, descriptor string, attrs ...attribute) {
	b.fields = appendU2(b.fields, int(access))
	b.fields = appendU2(b.fields, b.pool.utf8(name))
	b.fields = appendU2(b.fields, b.pool.utf8(descriptor))
	b.fields = appendU2(b.fields, len(attrs))
	b.fields = b.encodeAttributes(b.fields, attrs)
	b.fieldCount++
}

func (b *classBuilder) addMethod(access model.Flag, name, descriptor string, attrs ...attribute) {
	b.methods = appendU2(b.methods, int(access))
	b.methods = appendU2(b.methods, b.pool.utf8(name))
	b.methods = appendU2(b.methods, b.pool.utf8(descriptor))
	b.methods = appendU2(b.methods, len(attrs))
	b.methods = b.encodeAttributes(b.methods, attrs)
	b.methodCount++
}

func (b *classBuilder) addAttribute(name string, payload []byte) {
	b.attrs = b.encodeAttributes(b.attrs, []attribute{{name: name, payload: payload}})
	b.attrCount++
}

func (b *classBuilder) bytes() []byte {
	out := appendU4(nil, classFileMagic)
	out = appendU2(out, b.minor)
	out = appendU2(out, b.major)
	out = append(out, b.pool.bytes()...)
	out = appendU2(out, int(b.access))
	out = appendU2(out, b.thisClass)
	out = appendU2(out, b.superClass)
	out = appendU2(out, len(b.interfaces))
	for _, index := range b.interfaces {
		out = appendU2(out, index)
	}
	out = appendU2(out, b.fieldCount)
	out = append(out, b.fields...)
	out = appendU2(out, b.methodCount)
	out = append(out, b.methods...)
	out = appendU2(out, b.attrCount)
	out = append(out, b.attrs...)
	return out
}
