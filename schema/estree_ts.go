package schema

var (
	tsTypeVariants = []VariantDef{
		V(0, "Box<TSAnyKeyword>"),
		V(1, "Box<TSBigIntKeyword>"),
		V(2, "Box<TSBooleanKeyword>"),
		V(3, "Box<TSIntrinsicKeyword>"),
		V(4, "Box<TSNeverKeyword>"),
		V(5, "Box<TSNullKeyword>"),
		V(6, "Box<TSNumberKeyword>"),
		V(7, "Box<TSObjectKeyword>"),
		V(8, "Box<TSStringKeyword>"),
		V(9, "Box<TSSymbolKeyword>"),
		V(10, "Box<TSThisType>"),
		V(11, "Box<TSUndefinedKeyword>"),
		V(12, "Box<TSUnknownKeyword>"),
		V(13, "Box<TSVoidKeyword>"),
		V(14, "Box<TSArrayType>"),
		V(15, "Box<TSConditionalType>"),
		V(16, "Box<TSConstructorType>"),
		V(17, "Box<TSFunctionType>"),
		V(18, "Box<TSImportType>"),
		V(19, "Box<TSIndexedAccessType>"),
		V(20, "Box<TSInferType>"),
		V(21, "Box<TSIntersectionType>"),
		V(22, "Box<TSLiteralType>"),
		V(23, "Box<TSMappedType>"),
		V(24, "Box<TSNamedTupleMember>"),
		V(26, "Box<TSTemplateLiteralType>"),
		V(27, "Box<TSTupleType>"),
		V(28, "Box<TSTypeLiteral>"),
		V(29, "Box<TSTypeOperator>"),
		V(30, "Box<TSTypePredicate>"),
		V(31, "Box<TSTypeQuery>"),
		V(32, "Box<TSTypeReference>"),
		V(33, "Box<TSUnionType>"),
		V(34, "Box<TSParenthesizedType>"),
		V(35, "Box<JSDocNullableType>"),
		V(36, "Box<JSDocNonNullableType>"),
		V(37, "Box<JSDocUnknownType>"),
	}

	tsTypeNameVariants = []VariantDef{
		V(0, "Box<IdentifierReference>"),
		V(1, "Box<TSQualifiedName>"),
		V(2, "Box<ThisExpression>"),
	}
)

// tsDefs declares the TypeScript nodes.
func tsDefs() []*Def {
	return []*Def{
		Struct("TSThisParameter", 24, "Identifier",
			EmptyList("decorators"),
			Const("name", "this"),
			Const("optional", false),
			F("typeAnnotation", 16, "Option<Box<TSTypeAnnotation>>"),
		),
		Struct("TSEnumDeclaration", 80, "TSEnumDeclaration",
			F("id", 8, "BindingIdentifier"),
			F("body", 40, "TSEnumBody"),
			F("const", 76, "bool"),
			F("declare", 77, "bool"),
		),
		Struct("TSEnumBody", 32, "TSEnumBody",
			F("members", 8, "Vec<TSEnumMember>"),
		),
		Struct("TSEnumMember", 40, "TSEnumMember",
			F("id", 8, "TSEnumMemberName"),
			F("initializer", 24, "Option<Expression>"),
			Const("computed", false),
		).Hook(HookEnumMember),
		Enum("TSEnumMemberName",
			[]VariantDef{
				V(0, "Box<IdentifierName>"),
				V(1, "Box<StringLiteral>"),
				V(2, "Box<StringLiteral>"),
				V(3, "Box<TemplateLiteral>"),
			},
		),
		Struct("TSTypeAnnotation", 24, "TSTypeAnnotation",
			F("typeAnnotation", 8, "TSType"),
		),
		Struct("TSLiteralType", 24, "TSLiteralType",
			F("literal", 8, "TSLiteral"),
		),
		Enum("TSLiteral",
			[]VariantDef{
				V(0, "Box<BooleanLiteral>"),
				V(1, "Box<NumericLiteral>"),
				V(2, "Box<BigIntLiteral>"),
				V(3, "Box<StringLiteral>"),
				V(4, "Box<TemplateLiteral>"),
				V(5, "Box<UnaryExpression>"),
			},
		),
		Enum("TSType", tsTypeVariants),
		Struct("TSConditionalType", 72, "TSConditionalType",
			F("checkType", 8, "TSType"),
			F("extendsType", 24, "TSType"),
			F("trueType", 40, "TSType"),
			F("falseType", 56, "TSType"),
		),
		Struct("TSUnionType", 32, "TSUnionType",
			F("types", 8, "Vec<TSType>"),
		),
		Struct("TSIntersectionType", 32, "TSIntersectionType",
			F("types", 8, "Vec<TSType>"),
		),
		Struct("TSParenthesizedType", 24, "TSParenthesizedType",
			F("typeAnnotation", 8, "TSType"),
		).Hook(HookParenthesized),
		Struct("TSTypeOperator", 32, "TSTypeOperator",
			F("operator", 24, "TSTypeOperatorOperator"),
			F("typeAnnotation", 8, "TSType"),
		),
		Plain("TSTypeOperatorOperator", "keyof", "unique", "readonly"),
		Struct("TSArrayType", 24, "TSArrayType",
			F("elementType", 8, "TSType"),
		),
		Struct("TSIndexedAccessType", 40, "TSIndexedAccessType",
			F("objectType", 8, "TSType"),
			F("indexType", 24, "TSType"),
		),
		Struct("TSTupleType", 32, "TSTupleType",
			F("elementTypes", 8, "Vec<TSTupleElement>"),
		),
		Struct("TSNamedTupleMember", 56, "TSNamedTupleMember",
			F("label", 8, "IdentifierName"),
			F("elementType", 32, "TSTupleElement"),
			F("optional", 48, "bool"),
		),
		Struct("TSOptionalType", 24, "TSOptionalType",
			F("typeAnnotation", 8, "TSType"),
		),
		Struct("TSRestType", 24, "TSRestType",
			F("typeAnnotation", 8, "TSType"),
		),
		Enum("TSTupleElement", tsTypeVariants,
			[]VariantDef{
				V(64, "Box<TSOptionalType>"),
				V(65, "Box<TSRestType>"),
			},
		),
		Struct("TSAnyKeyword", 8, "TSAnyKeyword"),
		Struct("TSStringKeyword", 8, "TSStringKeyword"),
		Struct("TSBooleanKeyword", 8, "TSBooleanKeyword"),
		Struct("TSNumberKeyword", 8, "TSNumberKeyword"),
		Struct("TSNeverKeyword", 8, "TSNeverKeyword"),
		Struct("TSIntrinsicKeyword", 8, "TSIntrinsicKeyword"),
		Struct("TSUnknownKeyword", 8, "TSUnknownKeyword"),
		Struct("TSNullKeyword", 8, "TSNullKeyword"),
		Struct("TSUndefinedKeyword", 8, "TSUndefinedKeyword"),
		Struct("TSVoidKeyword", 8, "TSVoidKeyword"),
		Struct("TSSymbolKeyword", 8, "TSSymbolKeyword"),
		Struct("TSThisType", 8, "TSThisType"),
		Struct("TSObjectKeyword", 8, "TSObjectKeyword"),
		Struct("TSBigIntKeyword", 8, "TSBigIntKeyword"),
		Struct("TSTypeReference", 32, "TSTypeReference",
			F("typeName", 8, "TSTypeName"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>"),
		),
		Enum("TSTypeName", tsTypeNameVariants),
		Struct("TSQualifiedName", 48, "TSQualifiedName",
			F("left", 8, "TSTypeName"),
			F("right", 24, "IdentifierName"),
		),
		Struct("TSTypeParameterInstantiation", 32, "TSTypeParameterInstantiation",
			F("params", 8, "Vec<TSType>"),
		),
		Struct("TSTypeParameter", 80, "TSTypeParameter",
			F("name", 8, "BindingIdentifier"),
			F("constraint", 40, "Option<TSType>"),
			F("default", 56, "Option<TSType>"),
			F("in", 72, "bool"),
			F("out", 73, "bool"),
			F("const", 74, "bool"),
		),
		Struct("TSTypeParameterDeclaration", 32, "TSTypeParameterDeclaration",
			F("params", 8, "Vec<TSTypeParameter>"),
		),
		Struct("TSTypeAliasDeclaration", 72, "TSTypeAliasDeclaration",
			F("id", 8, "BindingIdentifier"),
			F("typeParameters", 40, "Option<Box<TSTypeParameterDeclaration>>"),
			F("typeAnnotation", 48, "TSType"),
			F("declare", 68, "bool"),
		),
		Struct("TSInterfaceDeclaration", 88, "TSInterfaceDeclaration",
			F("id", 8, "BindingIdentifier"),
			F("typeParameters", 40, "Option<Box<TSTypeParameterDeclaration>>"),
			F("extends", 48, "Vec<TSInterfaceHeritage>"),
			F("body", 72, "Box<TSInterfaceBody>"),
			F("declare", 84, "bool"),
		),
		Struct("TSInterfaceBody", 32, "TSInterfaceBody",
			F("body", 8, "Vec<TSSignature>"),
		),
		Struct("TSPropertySignature", 40, "TSPropertySignature",
			F("computed", 32, "bool"),
			F("optional", 33, "bool"),
			F("readonly", 34, "bool"),
			F("key", 8, "PropertyKey"),
			F("typeAnnotation", 24, "Option<Box<TSTypeAnnotation>>"),
			Const("accessibility", nil),
			Const("static", false),
		),
		Enum("TSSignature",
			[]VariantDef{
				V(0, "Box<TSIndexSignature>"),
				V(1, "Box<TSPropertySignature>"),
				V(2, "Box<TSCallSignatureDeclaration>"),
				V(3, "Box<TSConstructSignatureDeclaration>"),
				V(4, "Box<TSMethodSignature>"),
			},
		),
		Struct("TSIndexSignature", 48, "TSIndexSignature",
			F("parameters", 8, "Vec<TSIndexSignatureName>"),
			F("typeAnnotation", 32, "Box<TSTypeAnnotation>"),
			F("readonly", 40, "bool"),
			F("static", 41, "bool"),
			Const("accessibility", nil),
		),
		Struct("TSCallSignatureDeclaration", 40, "TSCallSignatureDeclaration",
			F("typeParameters", 8, "Option<Box<TSTypeParameterDeclaration>>"),
			F("thisParam", 16, "Option<Box<TSThisParameter>>").As("params").Prepend(),
			F("params", 24, "Box<FormalParameters>"),
			F("returnType", 32, "Option<Box<TSTypeAnnotation>>"),
		),
		Plain("TSMethodSignatureKind", "method", "get", "set"),
		Struct("TSMethodSignature", 64, "TSMethodSignature",
			F("key", 8, "PropertyKey"),
			F("computed", 60, "bool"),
			F("optional", 61, "bool"),
			F("kind", 62, "TSMethodSignatureKind"),
			F("typeParameters", 24, "Option<Box<TSTypeParameterDeclaration>>"),
			F("thisParam", 32, "Option<Box<TSThisParameter>>").As("params").Prepend(),
			F("params", 40, "Box<FormalParameters>"),
			F("returnType", 48, "Option<Box<TSTypeAnnotation>>"),
			Const("accessibility", nil),
			Const("readonly", false),
			Const("static", false),
		),
		Struct("TSConstructSignatureDeclaration", 32, "TSConstructSignatureDeclaration",
			F("typeParameters", 8, "Option<Box<TSTypeParameterDeclaration>>"),
			F("params", 16, "Box<FormalParameters>"),
			F("returnType", 24, "Option<Box<TSTypeAnnotation>>"),
		),
		Struct("TSIndexSignatureName", 32, "Identifier",
			EmptyList("decorators"),
			F("name", 8, "Str"),
			Const("optional", false),
			F("typeAnnotation", 24, "Box<TSTypeAnnotation>"),
		),
		Struct("TSInterfaceHeritage", 32, "TSInterfaceHeritage",
			F("expression", 8, "Expression"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>"),
		),
		Struct("TSTypePredicate", 40, "TSTypePredicate",
			F("parameterName", 8, "TSTypePredicateName"),
			F("asserts", 32, "bool"),
			F("typeAnnotation", 24, "Option<Box<TSTypeAnnotation>>"),
		),
		Enum("TSTypePredicateName",
			[]VariantDef{
				V(0, "Box<IdentifierName>"),
				V(1, "TSThisType"),
			},
		),
		Struct("TSModuleDeclaration", 88, "TSModuleDeclaration",
			F("id", 8, "TSModuleDeclarationName"),
			F("body", 64, "Option<TSModuleDeclarationBody>"),
			F("kind", 84, "TSModuleDeclarationKind"),
			F("declare", 85, "bool"),
			Const("global", false),
		).Hook(HookModuleDeclaration),
		Plain("TSModuleDeclarationKind", "module", "namespace"),
		Enum("TSModuleDeclarationName",
			[]VariantDef{
				V(0, "BindingIdentifier"),
				V(1, "StringLiteral"),
			},
		),
		Enum("TSModuleDeclarationBody",
			[]VariantDef{
				V(0, "Box<TSModuleDeclaration>"),
				V(1, "Box<TSModuleBlock>"),
			},
		),
		Struct("TSGlobalDeclaration", 80, "TSModuleDeclaration",
			F("keyword", 8, "GlobalKeyword").As("id"),
			F("body", 16, "TSModuleBlock"),
			Const("kind", "global"),
			F("declare", 76, "bool"),
			Const("global", true),
		),
		Struct("GlobalKeyword", 8, "Identifier",
			EmptyList("decorators").Typed(),
			Const("name", "global"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("TSModuleBlock", 56, "TSModuleBlock",
			F("directives", 8, "Vec<Directive>").As("body"),
			F("statements", 32, "Vec<Statement>").As("body").Append(),
		),
		Struct("TSTypeLiteral", 32, "TSTypeLiteral",
			F("members", 8, "Vec<TSSignature>"),
		),
		Struct("TSInferType", 16, "TSInferType",
			F("typeParameter", 8, "Box<TSTypeParameter>"),
		),
		Struct("TSTypeQuery", 32, "TSTypeQuery",
			F("exprName", 8, "TSTypeQueryExprName"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>"),
		),
		Enum("TSTypeQueryExprName", tsTypeNameVariants,
			[]VariantDef{
				V(3, "Box<TSImportType>"),
			},
		),
		Struct("TSImportType", 88, "TSImportType",
			F("source", 8, "StringLiteral"),
			F("options", 56, "Option<Box<ObjectExpression>>"),
			F("qualifier", 64, "Option<TSImportTypeQualifier>"),
			F("typeArguments", 80, "Option<Box<TSTypeParameterInstantiation>>"),
		),
		Enum("TSImportTypeQualifier",
			[]VariantDef{
				V(0, "Box<IdentifierName>"),
				V(1, "Box<TSImportTypeQualifiedName>"),
			},
		),
		Struct("TSImportTypeQualifiedName", 48, "TSQualifiedName",
			F("left", 8, "TSImportTypeQualifier"),
			F("right", 24, "IdentifierName"),
		),
		Struct("TSFunctionType", 40, "TSFunctionType",
			F("typeParameters", 8, "Option<Box<TSTypeParameterDeclaration>>"),
			F("thisParam", 16, "Option<Box<TSThisParameter>>").As("params").Prepend(),
			F("params", 24, "Box<FormalParameters>"),
			F("returnType", 32, "Box<TSTypeAnnotation>"),
		),
		Struct("TSConstructorType", 40, "TSConstructorType",
			F("abstract", 36, "bool"),
			F("typeParameters", 8, "Option<Box<TSTypeParameterDeclaration>>"),
			F("params", 16, "Box<FormalParameters>"),
			F("returnType", 24, "Box<TSTypeAnnotation>"),
		),
		Struct("TSMappedType", 56, "TSMappedType",
			F("typeParameter", 8, "Box<TSTypeParameter>").As("key"),
			Const("constraint", nil),
			F("nameType", 16, "Option<TSType>"),
			F("typeAnnotation", 32, "Option<TSType>"),
			F("optional", 52, "Option<TSMappedTypeModifierOperator>"),
			F("readonly", 53, "Option<TSMappedTypeModifierOperator>"),
		).Hook(HookMappedType),
		Plain("TSMappedTypeModifierOperator", "true", "+", "-"),
		Struct("TSTemplateLiteralType", 56, "TSTemplateLiteralType",
			F("quasis", 8, "Vec<TemplateElement>"),
			F("types", 32, "Vec<TSType>"),
		),
		Struct("TSAsExpression", 40, "TSAsExpression",
			F("expression", 8, "Expression"),
			F("typeAnnotation", 24, "TSType"),
		),
		Struct("TSSatisfiesExpression", 40, "TSSatisfiesExpression",
			F("expression", 8, "Expression"),
			F("typeAnnotation", 24, "TSType"),
		),
		Struct("TSTypeAssertion", 40, "TSTypeAssertion",
			F("typeAnnotation", 8, "TSType"),
			F("expression", 24, "Expression"),
		),
		Struct("TSImportEqualsDeclaration", 64, "TSImportEqualsDeclaration",
			F("id", 8, "BindingIdentifier"),
			F("moduleReference", 40, "TSModuleReference"),
			F("importKind", 56, "ImportOrExportKind"),
		),
		Enum("TSModuleReference", tsTypeNameVariants,
			[]VariantDef{
				V(3, "Box<TSExternalModuleReference>"),
			},
		),
		Struct("TSExternalModuleReference", 56, "TSExternalModuleReference",
			F("expression", 8, "StringLiteral"),
		),
		Struct("TSNonNullExpression", 24, "TSNonNullExpression",
			F("expression", 8, "Expression"),
		),
		Struct("Decorator", 24, "Decorator",
			F("expression", 8, "Expression"),
		),
		Struct("TSExportAssignment", 24, "TSExportAssignment",
			F("expression", 8, "Expression"),
		),
		Struct("TSNamespaceExportDeclaration", 32, "TSNamespaceExportDeclaration",
			F("id", 8, "IdentifierName"),
		),
		Struct("TSInstantiationExpression", 32, "TSInstantiationExpression",
			F("expression", 8, "Expression"),
			F("typeArguments", 24, "Box<TSTypeParameterInstantiation>"),
		),
		Plain("ImportOrExportKind", "value", "type"),
		Struct("JSDocNullableType", 32, "TSJSDocNullableType",
			F("typeAnnotation", 8, "TSType"),
			F("postfix", 24, "bool"),
		),
		Struct("JSDocNonNullableType", 32, "TSJSDocNonNullableType",
			F("typeAnnotation", 8, "TSType"),
			F("postfix", 24, "bool"),
		),
		Struct("JSDocUnknownType", 8, "TSJSDocUnknownType"),
		Plain("TSAccessibility", "private", "protected", "public"),
		Struct("TSClassImplements", 32, "TSClassImplements",
			F("expression", 8, "TSTypeName"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>"),
		).Hook(HookClassImplements),
	}
}
