package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlag_Has(t *testing.T) {
	flags := FlagPublic | FlagStatic | FlagFinal
	assert.True(t, flags.Has(FlagPublic))
	assert.True(t, flags.Has(FlagPublic|FlagFinal))
	assert.False(t, flags.Has(FlagAbstract))
	assert.False(t, flags.Has(FlagPublic|FlagAbstract))
}

func TestFlag_ClassFileFlags(t *testing.T) {
	flags := FlagPublic | FlagDefault | FlagEnumImpl
	assert.Equal(t, FlagPublic, flags.ClassFileFlags())
}

func TestVisibilityFromFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags Flag
		want  Visibility
	}{
		{name: "public", flags: FlagPublic | FlagStatic, want: VisibilityPublic},
		{name: "protected", flags: FlagProtected, want: VisibilityProtected},
		{name: "private", flags: FlagPrivate | FlagFinal, want: VisibilityPrivate},
		{name: "package", flags: FlagStatic, want: VisibilityPackage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := VisibilityFromFlags(tc.flags)
			assert.Equal(t, tc.want, actual)
			assert.Equal(t, tc.flags&(FlagPublic|FlagProtected|FlagPrivate), actual.Flag())
		})
	}
}

func TestVisibility_String(t *testing.T) {
	assert.Equal(t, "public", VisibilityPublic.String())
	assert.Equal(t, "package", VisibilityPackage.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "interface", KindInterface.String())
	assert.Equal(t, "enum", KindEnum.String())
	assert.Equal(t, "annotation", KindAnnotation.String())
}
