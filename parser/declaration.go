package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/jbind/model"
	"github.com/viant/jbind/tree"
)

func convertUnit(root *sitter.Node, source []byte) *tree.CompUnit {
	unit := &tree.CompUnit{}
	for j := uint32(0); j < root.NamedChildCount(); j++ {
		child := root.NamedChild(int(j))
		switch child.Type() {
		case "package_declaration":
			unit.Package = packageName(child, source)
		case "import_declaration":
			if imp := convertImport(child, source); imp != nil {
				unit.Imports = append(unit.Imports, imp)
			}
		case "class_declaration", "interface_declaration",
			"enum_declaration", "annotation_type_declaration":
			if decl := convertType(child, source); decl != nil {
				unit.Decls = append(unit.Decls, decl)
			}
		}
	}
	return unit
}

func packageName(node *sitter.Node, source []byte) []string {
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		child := node.NamedChild(int(j))
		switch child.Type() {
		case "identifier", "scoped_identifier":
			return strings.Split(child.Content(source), ".")
		}
	}
	return nil
}

// convertImport returns nil for static imports, which bring in members
// rather than types.
func convertImport(node *sitter.Node, source []byte) *tree.Import {
	for j := uint32(0); j < node.ChildCount(); j++ {
		if node.Child(int(j)).Type() == "static" {
			return nil
		}
	}
	imp := &tree.Import{}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		child := node.NamedChild(int(j))
		switch child.Type() {
		case "identifier", "scoped_identifier":
			imp.Segments = strings.Split(child.Content(source), ".")
		case "asterisk":
			imp.Wildcard = true
		}
	}
	if len(imp.Segments) == 0 {
		return nil
	}
	return imp
}

func convertType(node *sitter.Node, source []byte) *tree.TypeDecl {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	decl := &tree.TypeDecl{
		Name:  nameNode.Content(source),
		Flags: modifierFlags(node, source),
	}
	switch node.Type() {
	case "class_declaration":
		decl.Kind = model.KindClass
	case "interface_declaration":
		decl.Kind = model.KindInterface
	case "enum_declaration":
		decl.Kind = model.KindEnum
	case "annotation_type_declaration":
		decl.Kind = model.KindAnnotation
	default:
		return nil
	}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		child := node.NamedChild(int(j))
		switch child.Type() {
		case "superclass":
			if ty := child.NamedChild(0); ty != nil {
				decl.Extends = classType(ty, source)
			}
		case "super_interfaces", "extends_interfaces":
			decl.Implements = append(decl.Implements, typeList(child, source)...)
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		decl.Members = convertBody(body, source)
	}
	return decl
}

func convertBody(body *sitter.Node, source []byte) []tree.Member {
	var members []tree.Member
	for j := uint32(0); j < body.NamedChildCount(); j++ {
		child := body.NamedChild(int(j))
		switch child.Type() {
		case "class_declaration", "interface_declaration",
			"enum_declaration", "annotation_type_declaration":
			if decl := convertType(child, source); decl != nil {
				members = append(members, decl)
			}
		case "field_declaration", "constant_declaration":
			members = append(members, convertFields(child, source)...)
		case "method_declaration", "constructor_declaration",
			"annotation_type_element_declaration":
			if method := convertMethod(child, source); method != nil {
				members = append(members, method)
			}
		case "enum_constant":
			members = append(members, convertEnumConstant(child, source))
		case "enum_body_declarations":
			members = append(members, convertBody(child, source)...)
		}
	}
	return members
}

// convertFields expands one declaration into a VarDecl per declarator.
func convertFields(node *sitter.Node, source []byte) []tree.Member {
	flags := modifierFlags(node, source)
	var fieldType *tree.ClassType
	if ty := node.ChildByFieldName("type"); ty != nil {
		fieldType = classType(ty, source)
	}
	var members []tree.Member
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		child := node.NamedChild(int(j))
		if child.Type() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		members = append(members, &tree.VarDecl{
			Flags: flags,
			Name:  name.Content(source),
			Type:  fieldType,
		})
	}
	return members
}

func convertMethod(node *sitter.Node, source []byte) *tree.MethodDecl {
	name := node.ChildByFieldName("name")
	if name == nil {
		return nil
	}
	return &tree.MethodDecl{
		Flags: modifierFlags(node, source),
		Name:  name.Content(source),
	}
}

func convertEnumConstant(node *sitter.Node, source []byte) *tree.VarDecl {
	flags := model.FlagPublic | model.FlagStatic | model.FlagFinal | model.FlagEnum
	if node.ChildByFieldName("body") != nil {
		flags |= model.FlagEnumImpl
	}
	decl := &tree.VarDecl{Flags: flags}
	if name := node.ChildByFieldName("name"); name != nil {
		decl.Name = name.Content(source)
	}
	return decl
}

func modifierFlags(node *sitter.Node, source []byte) model.Flag {
	var flags model.Flag
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		child := node.NamedChild(int(j))
		if child.Type() != "modifiers" {
			continue
		}
		for k := uint32(0); k < child.ChildCount(); k++ {
			switch child.Child(int(k)).Type() {
			case "public":
				flags |= model.FlagPublic
			case "protected":
				flags |= model.FlagProtected
			case "private":
				flags |= model.FlagPrivate
			case "static":
				flags |= model.FlagStatic
			case "final":
				flags |= model.FlagFinal
			case "abstract":
				flags |= model.FlagAbstract
			case "synchronized":
				flags |= model.FlagSynchronized
			case "volatile":
				flags |= model.FlagVolatile
			case "transient":
				flags |= model.FlagTransient
			case "native":
				flags |= model.FlagNative
			case "strictfp":
				flags |= model.FlagStrict
			case "default":
				flags |= model.FlagDefault
			}
		}
	}
	return flags
}

// classType converts a type node to its qualified name chain. Type
// arguments are erased; primitive and array types yield nil.
func classType(node *sitter.Node, source []byte) *tree.ClassType {
	switch node.Type() {
	case "type_identifier":
		return &tree.ClassType{Name: node.Content(source)}
	case "generic_type":
		if inner := node.NamedChild(0); inner != nil {
			return classType(inner, source)
		}
	case "scoped_type_identifier":
		count := node.NamedChildCount()
		if count == 0 {
			return nil
		}
		name := node.NamedChild(int(count - 1))
		if name.Type() != "type_identifier" {
			return nil
		}
		return &tree.ClassType{
			Base: classType(node.NamedChild(0), source),
			Name: name.Content(source),
		}
	}
	return nil
}

func typeList(node *sitter.Node, source []byte) []*tree.ClassType {
	var types []*tree.ClassType
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		child := node.NamedChild(int(j))
		if child.Type() == "type_list" {
			return typeList(child, source)
		}
		if ty := classType(child, source); ty != nil {
			types = append(types, ty)
		}
	}
	return types
}
