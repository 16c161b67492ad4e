package schema

// jsxDefs declares the JSX nodes.
func jsxDefs() []*Def {
	return []*Def{
		Struct("JSXElement", 48, "JSXElement",
			F("openingElement", 8, "Box<JSXOpeningElement>"),
			F("children", 16, "Vec<JSXChild>"),
			F("closingElement", 40, "Option<Box<JSXClosingElement>>"),
		).Hook(HookJSXElement),
		Struct("JSXOpeningElement", 56, "JSXOpeningElement",
			F("name", 8, "JSXElementName"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>").Typed(),
			F("attributes", 32, "Vec<JSXAttributeItem>"),
			Const("selfClosing", false),
		),
		Struct("JSXClosingElement", 24, "JSXClosingElement",
			F("name", 8, "JSXElementName"),
		),
		Struct("JSXFragment", 48, "JSXFragment",
			F("openingFragment", 8, "JSXOpeningFragment"),
			F("children", 16, "Vec<JSXChild>"),
			F("closingFragment", 40, "JSXClosingFragment"),
		),
		Struct("JSXOpeningFragment", 8, "JSXOpeningFragment",
			EmptyList("attributes").Plain(),
			Const("selfClosing", false).Plain(),
		),
		Struct("JSXClosingFragment", 8, "JSXClosingFragment"),
		Enum("JSXElementName",
			[]VariantDef{
				V(0, "Box<JSXIdentifier>"),
				V(1, "Box<JSXIdentifierReference>"),
				V(2, "Box<JSXNamespacedName>"),
				V(3, "Box<JSXMemberExpression>"),
				V(4, "Box<JSXThisExpression>"),
			},
		),
		Struct("JSXIdentifierReference", 24, "JSXIdentifier",
			F("name", 8, "Str"),
		),
		Struct("JSXThisExpression", 8, "JSXIdentifier",
			Const("name", "this"),
		),
		Struct("JSXNamespacedName", 56, "JSXNamespacedName",
			F("namespace", 8, "JSXIdentifier"),
			F("name", 32, "JSXIdentifier"),
		),
		Struct("JSXMemberExpression", 48, "JSXMemberExpression",
			F("object", 8, "JSXMemberExpressionObject"),
			F("property", 24, "JSXIdentifier"),
		),
		Enum("JSXMemberExpressionObject",
			[]VariantDef{
				V(0, "Box<JSXIdentifierReference>"),
				V(1, "Box<JSXMemberExpression>"),
				V(2, "Box<JSXThisExpression>"),
			},
		),
		Struct("JSXExpressionContainer", 24, "JSXExpressionContainer",
			F("expression", 8, "JSXExpression"),
		),
		Enum("JSXExpression", expressionVariants,
			[]VariantDef{
				V(64, "JSXEmptyExpression"),
			},
		),
		Struct("JSXEmptyExpression", 8, "JSXEmptyExpression"),
		Enum("JSXAttributeItem",
			[]VariantDef{
				V(0, "Box<JSXAttribute>"),
				V(1, "Box<JSXSpreadAttribute>"),
			},
		),
		Struct("JSXAttribute", 40, "JSXAttribute",
			F("name", 8, "JSXAttributeName"),
			F("value", 24, "Option<JSXAttributeValue>"),
		),
		Struct("JSXSpreadAttribute", 24, "JSXSpreadAttribute",
			F("argument", 8, "Expression"),
		),
		Enum("JSXAttributeName",
			[]VariantDef{
				V(0, "Box<JSXIdentifier>"),
				V(1, "Box<JSXNamespacedName>"),
			},
		),
		Enum("JSXAttributeValue",
			[]VariantDef{
				V(0, "Box<StringLiteral>"),
				V(1, "Box<JSXExpressionContainer>"),
				V(2, "Box<JSXElement>"),
				V(3, "Box<JSXFragment>"),
			},
		),
		Struct("JSXIdentifier", 24, "JSXIdentifier",
			F("name", 8, "Str"),
		),
		Enum("JSXChild",
			[]VariantDef{
				V(0, "Box<JSXText>"),
				V(1, "Box<JSXElement>"),
				V(2, "Box<JSXFragment>"),
				V(3, "Box<JSXExpressionContainer>"),
				V(4, "Box<JSXSpreadChild>"),
			},
		),
		Struct("JSXSpreadChild", 24, "JSXSpreadChild",
			F("expression", 8, "Expression"),
		),
		Struct("JSXText", 40, "JSXText",
			F("value", 8, "Str"),
			F("raw", 24, "Option<Str>"),
		),
	}
}
