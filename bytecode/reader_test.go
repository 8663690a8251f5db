package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/jbind/model"
)

func retentionPayload(pool *poolBuilder, policy string) []byte {
	payload := appendU2(nil, 1)
	payload = appendU2(payload, pool.utf8(retentionDescriptor))
	payload = appendU2(payload, 1)
	payload = appendU2(payload, pool.utf8("value"))
	payload = append(payload, 'e')
	payload = appendU2(payload, pool.utf8(retentionPolicyDescriptor))
	payload = appendU2(payload, pool.utf8(policy))
	return payload
}

func TestRead_SimpleClass(t *testing.T) {
	b := newClassBuilder("com/example/Foo")
	b.access = model.FlagPublic | model.FlagSuper
	b.setSuper("java/lang/Object")
	b.addInterface("com/example/First")
	b.addInterface("com/example/Second")
	b.addField(model.FlagPrivate|model.FlagStatic|model.FlagFinal, "LIMIT", "I",
		attribute{name: "ConstantValue", payload: appendU2(nil, b.pool.integer(128))})
	b.addField(model.FlagPrivate, "name", "Ljava/lang/String;",
		attribute{name: "Deprecated", payload: nil})
	exceptions := appendU2(nil, 1)
	exceptions = appendU2(exceptions, b.pool.class("java/io/IOException"))
	b.addMethod(model.FlagPublic, "run", "()V",
		attribute{name: "Exceptions", payload: exceptions},
		attribute{name: "Signature", payload: appendU2(nil, b.pool.utf8("<T:Ljava/lang/Object;>()V"))},
		attribute{name: "Code", payload: []byte{0x00, 0x01, 0x02}})
	b.addAttribute("Signature", appendU2(nil, b.pool.utf8("<X:Ljava/lang/Object;>Ljava/lang/Object;")))
	b.addAttribute("SourceFile", appendU2(nil, b.pool.utf8("Foo.java")))

	file, err := Read(b.bytes())
	require.NoError(t, err)

	assert.Equal(t, "com/example/Foo", file.Name)
	assert.Equal(t, model.FlagPublic|model.FlagSuper, file.AccessFlags)
	assert.Equal(t, "java/lang/Object", file.SuperClass)
	assert.Equal(t, []string{"com/example/First", "com/example/Second"}, file.Interfaces)
	assert.Equal(t, "<X:Ljava/lang/Object;>Ljava/lang/Object;", file.Signature)

	require.Len(t, file.Fields, 2)
	assert.Equal(t, "LIMIT", file.Fields[0].Name)
	assert.Equal(t, "I", file.Fields[0].Descriptor)
	assert.Equal(t, model.IntValue(128), file.Fields[0].Value)
	assert.Equal(t, "name", file.Fields[1].Name)
	assert.Nil(t, file.Fields[1].Value)

	require.Len(t, file.Methods, 1)
	assert.Equal(t, "run", file.Methods[0].Name)
	assert.Equal(t, "()V", file.Methods[0].Descriptor)
	assert.Equal(t, []string{"java/io/IOException"}, file.Methods[0].Exceptions)
	assert.Equal(t, "<T:Ljava/lang/Object;>()V", file.Methods[0].Signature)

	assert.Empty(t, file.Annotations)
}

func TestRead_RootObject(t *testing.T) {
	b := newClassBuilder("java/lang/Object")
	b.access = model.FlagPublic | model.FlagSuper
	file, err := Read(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, "", file.SuperClass)
}

func TestRead_BadMagic(t *testing.T) {
	data := appendU4(nil, 0xdeadbeef)
	_, err := Read(data)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestRead_BadVersion(t *testing.T) {
	for _, major := range []int{44, 53} {
		b := newClassBuilder("A")
		b.major = major
		_, err := Read(b.bytes())
		assert.ErrorIs(t, err, ErrBadVersion)
	}
}

func TestRead_VersionRange(t *testing.T) {
	for _, major := range []int{45, 52} {
		b := newClassBuilder("A")
		b.major = major
		_, err := Read(b.bytes())
		assert.NoError(t, err)
	}
}

func TestRead_Truncated(t *testing.T) {
	b := newClassBuilder("A")
	data := b.bytes()
	_, err := Read(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSkipAttribute(t *testing.T) {
	data := appendU4(nil, 3)
	data = append(data, 0xaa, 0xbb, 0xcc, 0xdd)
	c := &classReader{r: NewByteReader(data)}
	require.NoError(t, c.skipAttribute())
	assert.Equal(t, 7, c.r.Pos())
}

func TestRead_UnknownAttributeSkipping(t *testing.T) {
	b := newClassBuilder("A")
	b.addAttribute("Foo", []byte{1, 2, 3, 4, 5})
	b.addAttribute("Signature", appendU2(nil, b.pool.utf8("LA;")))

	file, err := Read(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, "LA;", file.Signature)
}

func TestRead_InnerClassFilter(t *testing.T) {
	b := newClassBuilder("p/Outer")
	payload := appendU2(nil, 3)
	// p/Outer$Inner inside this class
	payload = appendU2(payload, b.pool.class("p/Outer$Inner"))
	payload = appendU2(payload, b.pool.class("p/Outer"))
	payload = appendU2(payload, b.pool.utf8("Inner"))
	payload = appendU2(payload, int(model.FlagPublic|model.FlagStatic))
	// unrelated record, dropped
	payload = appendU2(payload, b.pool.class("q/Other$Nested"))
	payload = appendU2(payload, b.pool.class("q/Other"))
	payload = appendU2(payload, b.pool.utf8("Nested"))
	payload = appendU2(payload, int(model.FlagPublic))
	// anonymous class record mentioning this class as inner
	payload = appendU2(payload, b.pool.class("p/Outer"))
	payload = appendU2(payload, 0)
	payload = appendU2(payload, 0)
	payload = appendU2(payload, int(model.FlagPublic))
	b.addAttribute("InnerClasses", payload)

	file, err := Read(b.bytes())
	require.NoError(t, err)

	require.Len(t, file.InnerClasses, 2)
	assert.Equal(t, InnerClass{
		InnerClass: "p/Outer$Inner",
		OuterClass: "p/Outer",
		InnerName:  "Inner",
		Access:     model.FlagPublic | model.FlagStatic,
	}, file.InnerClasses[0])
	assert.Equal(t, InnerClass{InnerClass: "p/Outer", Access: model.FlagPublic}, file.InnerClasses[1])
}

func TestRead_RetentionRoundTrip(t *testing.T) {
	b := newClassBuilder("p/Anno")
	b.access = model.FlagInterface | model.FlagAbstract | model.FlagAnnotation
	b.addAttribute("RuntimeVisibleAnnotations", retentionPayload(b.pool, "RUNTIME"))

	file, err := Read(b.bytes())
	require.NoError(t, err)

	require.Len(t, file.Annotations, 1)
	annotation := file.Annotations[0]
	assert.Equal(t, retentionDescriptor, annotation.TypeName)
	assert.True(t, annotation.RuntimeVisible)
	require.Len(t, annotation.Elements, 1)
	assert.Equal(t,
		EnumConstValue{TypeName: retentionPolicyDescriptor, ConstName: "RUNTIME"},
		annotation.Elements["value"])
}

func TestRead_AnnotationsSkippedForNonAnnotation(t *testing.T) {
	b := newClassBuilder("p/Plain")
	b.access = model.FlagPublic | model.FlagSuper
	b.addAttribute("RuntimeVisibleAnnotations", retentionPayload(b.pool, "RUNTIME"))
	b.addAttribute("Signature", appendU2(nil, b.pool.utf8("Lp/Plain;")))

	file, err := Read(b.bytes())
	require.NoError(t, err)
	assert.Empty(t, file.Annotations)
	assert.Equal(t, "Lp/Plain;", file.Signature)
}

func TestRead_IgnoredElementValues(t *testing.T) {
	b := newClassBuilder("p/Anno")
	b.access = model.FlagInterface | model.FlagAbstract | model.FlagAnnotation

	payload := appendU2(nil, 2)
	// an annotation that is not @Retention is consumed and dropped
	payload = appendU2(payload, b.pool.utf8("Lp/Other;"))
	payload = appendU2(payload, 4)
	payload = appendU2(payload, b.pool.utf8("count"))
	payload = append(payload, 'I')
	payload = appendU2(payload, 1)
	payload = appendU2(payload, b.pool.utf8("type"))
	payload = append(payload, 'c')
	payload = appendU2(payload, 1)
	payload = appendU2(payload, b.pool.utf8("nested"))
	payload = append(payload, '@')
	payload = appendU2(payload, b.pool.utf8("Lp/Inner;"))
	payload = appendU2(payload, 0)
	payload = appendU2(payload, b.pool.utf8("values"))
	payload = append(payload, '[')
	payload = appendU2(payload, 2)
	payload = append(payload, 's')
	payload = appendU2(payload, 1)
	payload = append(payload, 'Z')
	payload = appendU2(payload, 1)
	// @Retention itself
	payload = appendU2(payload, b.pool.utf8(retentionDescriptor))
	payload = appendU2(payload, 1)
	payload = appendU2(payload, b.pool.utf8("value"))
	payload = append(payload, 'e')
	payload = appendU2(payload, b.pool.utf8(retentionPolicyDescriptor))
	payload = appendU2(payload, b.pool.utf8("CLASS"))
	b.addAttribute("RuntimeVisibleAnnotations", payload)

	file, err := Read(b.bytes())
	require.NoError(t, err)

	require.Len(t, file.Annotations, 1)
	assert.Equal(t,
		EnumConstValue{TypeName: retentionPolicyDescriptor, ConstName: "CLASS"},
		file.Annotations[0].Elements["value"])
}

func TestRead_DuplicateRetentionValue(t *testing.T) {
	b := newClassBuilder("p/Anno")
	b.access = model.FlagInterface | model.FlagAbstract | model.FlagAnnotation

	payload := appendU2(nil, 1)
	payload = appendU2(payload, b.pool.utf8(retentionDescriptor))
	payload = appendU2(payload, 2)
	payload = appendU2(payload, b.pool.utf8("value"))
	payload = append(payload, 'e')
	payload = appendU2(payload, b.pool.utf8(retentionPolicyDescriptor))
	payload = appendU2(payload, b.pool.utf8("SOURCE"))
	payload = appendU2(payload, b.pool.utf8("value"))
	payload = append(payload, 'e')
	payload = appendU2(payload, b.pool.utf8(retentionPolicyDescriptor))
	payload = appendU2(payload, b.pool.utf8("RUNTIME"))
	b.addAttribute("RuntimeVisibleAnnotations", payload)

	file, err := Read(b.bytes())
	require.NoError(t, err)

	require.Len(t, file.Annotations, 1)
	assert.Equal(t,
		EnumConstValue{TypeName: retentionPolicyDescriptor, ConstName: "RUNTIME"},
		file.Annotations[0].Elements["value"])
}

func TestRead_BadElementValueTag(t *testing.T) {
	b := newClassBuilder("p/Anno")
	b.access = model.FlagInterface | model.FlagAbstract | model.FlagAnnotation

	payload := appendU2(nil, 1)
	payload = appendU2(payload, b.pool.utf8(retentionDescriptor))
	payload = appendU2(payload, 1)
	payload = appendU2(payload, b.pool.utf8("value"))
	payload = append(payload, 'x')
	b.addAttribute("RuntimeVisibleAnnotations", payload)

	_, err := Read(b.bytes())
	assert.ErrorIs(t, err, ErrBadTag)
}
