package schema

// Shared discriminant ranges. Unions that contain a range reuse the same
// declaration so their tables cannot drift apart.
var (
	expressionVariants = []VariantDef{
		V(0, "Box<BooleanLiteral>"),
		V(1, "Box<NullLiteral>"),
		V(2, "Box<NumericLiteral>"),
		V(3, "Box<BigIntLiteral>"),
		V(4, "Box<RegExpLiteral>"),
		V(5, "Box<StringLiteral>"),
		V(6, "Box<TemplateLiteral>"),
		V(7, "Box<IdentifierReference>"),
		V(8, "Box<MetaProperty>"),
		V(9, "Box<Super>"),
		V(10, "Box<ArrayExpression>"),
		V(11, "Box<ArrowFunctionExpression>"),
		V(12, "Box<AssignmentExpression>"),
		V(13, "Box<AwaitExpression>"),
		V(14, "Box<BinaryExpression>"),
		V(15, "Box<CallExpression>"),
		V(16, "Box<ChainExpression>"),
		V(17, "Box<Class>"),
		V(18, "Box<ConditionalExpression>"),
		V(19, "Box<Function>"),
		V(20, "Box<ImportExpression>"),
		V(21, "Box<LogicalExpression>"),
		V(22, "Box<NewExpression>"),
		V(23, "Box<ObjectExpression>"),
		V(24, "Box<ParenthesizedExpression>"),
		V(25, "Box<SequenceExpression>"),
		V(26, "Box<TaggedTemplateExpression>"),
		V(27, "Box<ThisExpression>"),
		V(28, "Box<UnaryExpression>"),
		V(29, "Box<UpdateExpression>"),
		V(30, "Box<YieldExpression>"),
		V(31, "Box<PrivateInExpression>"),
		V(32, "Box<JSXElement>"),
		V(33, "Box<JSXFragment>"),
		V(34, "Box<TSAsExpression>"),
		V(35, "Box<TSSatisfiesExpression>"),
		V(36, "Box<TSTypeAssertion>"),
		V(37, "Box<TSNonNullExpression>"),
		V(38, "Box<TSInstantiationExpression>"),
		V(39, "Box<V8IntrinsicExpression>"),
		V(48, "Box<ComputedMemberExpression>"),
		V(49, "Box<StaticMemberExpression>"),
		V(50, "Box<PrivateFieldExpression>"),
	}

	argumentVariants = []VariantDef{
		V(64, "Box<SpreadElement>"),
	}

	assignmentTargetVariants = []VariantDef{
		V(8, "Box<ArrayAssignmentTarget>"),
		V(9, "Box<ObjectAssignmentTarget>"),
	}

	simpleAssignmentTargetVariants = []VariantDef{
		V(0, "Box<IdentifierReference>"),
		V(1, "Box<TSAsExpression>"),
		V(2, "Box<TSSatisfiesExpression>"),
		V(3, "Box<TSNonNullExpression>"),
		V(4, "Box<TSTypeAssertion>"),
		V(48, "Box<ComputedMemberExpression>"),
		V(49, "Box<StaticMemberExpression>"),
		V(50, "Box<PrivateFieldExpression>"),
	}

	declarationVariants = []VariantDef{
		V(32, "Box<VariableDeclaration>"),
		V(33, "Box<Function>"),
		V(34, "Box<Class>"),
		V(35, "Box<TSTypeAliasDeclaration>"),
		V(36, "Box<TSInterfaceDeclaration>"),
		V(37, "Box<TSEnumDeclaration>"),
		V(38, "Box<TSModuleDeclaration>"),
		V(39, "Box<TSGlobalDeclaration>"),
		V(40, "Box<TSImportEqualsDeclaration>"),
	}
)

// jsDefs declares the JavaScript nodes, literals, comments and operators.
func jsDefs() []*Def {
	return []*Def{
		Struct("Program", 128, "Program",
			F("sourceText", 8, "Str").Hidden(),
			F("directives", 72, "Vec<Directive>").As("body"),
			F("statements", 96, "Vec<Statement>").As("body").Append(),
			F("sourceType", 125, "ModuleKind"),
			F("hashbang", 48, "Option<Hashbang>"),
		).Hook(HookProgram),
		Enum("Expression", expressionVariants),
		Struct("IdentifierName", 24, "Identifier",
			EmptyList("decorators").Typed(),
			F("name", 8, "Str"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("IdentifierReference", 24, "Identifier",
			EmptyList("decorators").Typed(),
			F("name", 8, "Str"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("BindingIdentifier", 24, "Identifier",
			EmptyList("decorators").Typed(),
			F("name", 8, "Str"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("LabelIdentifier", 24, "Identifier",
			EmptyList("decorators").Typed(),
			F("name", 8, "Str"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("ThisExpression", 8, "ThisExpression"),
		Struct("ArrayExpression", 32, "ArrayExpression",
			F("elements", 8, "Vec<ArrayExpressionElement>"),
		),
		Enum("ArrayExpressionElement", argumentVariants, expressionVariants,
			[]VariantDef{
				V(65, "Elision"),
			},
		),
		Struct("Elision", 8, "").Shape(ShapeNull),
		Struct("ObjectExpression", 32, "ObjectExpression",
			F("properties", 8, "Vec<ObjectPropertyKind>"),
		),
		Enum("ObjectPropertyKind",
			[]VariantDef{
				V(0, "Box<ObjectProperty>"),
				V(1, "Box<SpreadElement>"),
			},
		),
		Struct("ObjectProperty", 48, "Property",
			F("kind", 40, "PropertyKind"),
			F("key", 8, "PropertyKey"),
			F("value", 24, "Expression"),
			F("method", 41, "bool"),
			F("shorthand", 42, "bool"),
			F("computed", 43, "bool"),
			Const("optional", false).Typed(),
		),
		Enum("PropertyKey", expressionVariants,
			[]VariantDef{
				V(64, "Box<IdentifierName>"),
				V(65, "Box<PrivateIdentifier>"),
			},
		),
		Plain("PropertyKind", "init", "get", "set"),
		Struct("TemplateLiteral", 56, "TemplateLiteral",
			F("quasis", 8, "Vec<TemplateElement>"),
			F("expressions", 32, "Vec<Expression>"),
		),
		Struct("TaggedTemplateExpression", 88, "TaggedTemplateExpression",
			F("tag", 8, "Expression"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>").Typed(),
			F("quasi", 32, "TemplateLiteral"),
		),
		Struct("TemplateElement", 48, "TemplateElement",
			Const("value", nil),
			F("tail", 40, "bool"),
			F("raw", 8, "Str").Hidden(),
			F("cooked", 24, "Option<Str>").Hidden().EscapeIf(41),
			F("escaped", 41, "bool").Hidden(),
		).Hook(HookTemplateElement),
		Struct("ComputedMemberExpression", 48, "MemberExpression",
			F("object", 8, "Expression"),
			F("property", 24, "Expression"),
			F("optional", 40, "bool"),
			Const("computed", true),
		),
		Struct("StaticMemberExpression", 56, "MemberExpression",
			F("object", 8, "Expression"),
			F("property", 24, "IdentifierName"),
			F("optional", 48, "bool"),
			Const("computed", false),
		),
		Struct("PrivateFieldExpression", 56, "MemberExpression",
			F("object", 8, "Expression"),
			F("property", 24, "PrivateIdentifier"),
			F("optional", 48, "bool"),
			Const("computed", false),
		),
		Struct("CallExpression", 64, "CallExpression",
			F("callee", 8, "Expression"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>").Typed(),
			F("arguments", 32, "Vec<Argument>"),
			F("optional", 56, "bool"),
		),
		Struct("NewExpression", 56, "NewExpression",
			F("callee", 8, "Expression"),
			F("typeArguments", 24, "Option<Box<TSTypeParameterInstantiation>>").Typed(),
			F("arguments", 32, "Vec<Argument>"),
		),
		Struct("MetaProperty", 56, "MetaProperty",
			F("meta", 8, "IdentifierName"),
			F("property", 32, "IdentifierName"),
		),
		Struct("SpreadElement", 24, "SpreadElement",
			F("argument", 8, "Expression"),
		),
		Enum("Argument", argumentVariants, expressionVariants),
		Struct("UpdateExpression", 32, "UpdateExpression",
			F("operator", 24, "UpdateOperator"),
			F("prefix", 25, "bool"),
			F("argument", 8, "SimpleAssignmentTarget"),
		),
		Struct("UnaryExpression", 32, "UnaryExpression",
			F("operator", 24, "UnaryOperator"),
			F("argument", 8, "Expression"),
			Const("prefix", true),
		),
		Struct("BinaryExpression", 48, "BinaryExpression",
			F("left", 8, "Expression"),
			F("operator", 40, "BinaryOperator"),
			F("right", 24, "Expression"),
		),
		Struct("PrivateInExpression", 48, "BinaryExpression",
			F("left", 8, "PrivateIdentifier"),
			Const("operator", "in"),
			F("right", 32, "Expression"),
		),
		Struct("LogicalExpression", 48, "LogicalExpression",
			F("left", 8, "Expression"),
			F("operator", 40, "LogicalOperator"),
			F("right", 24, "Expression"),
		),
		Struct("ConditionalExpression", 56, "ConditionalExpression",
			F("test", 8, "Expression"),
			F("consequent", 24, "Expression"),
			F("alternate", 40, "Expression"),
		),
		Struct("AssignmentExpression", 48, "AssignmentExpression",
			F("operator", 40, "AssignmentOperator"),
			F("left", 8, "AssignmentTarget"),
			F("right", 24, "Expression"),
		),
		Enum("AssignmentTarget", assignmentTargetVariants, simpleAssignmentTargetVariants),
		Enum("SimpleAssignmentTarget", simpleAssignmentTargetVariants),
		Struct("ArrayAssignmentTarget", 40, "ArrayPattern",
			EmptyList("decorators").Typed(),
			F("elements", 8, "Vec<Option<AssignmentTargetMaybeDefault>>"),
			F("rest", 32, "Option<Box<AssignmentTargetRest>>").As("elements").Append(),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("ObjectAssignmentTarget", 40, "ObjectPattern",
			EmptyList("decorators").Typed(),
			F("properties", 8, "Vec<AssignmentTargetProperty>"),
			F("rest", 32, "Option<Box<AssignmentTargetRest>>").As("properties").Append(),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("AssignmentTargetRest", 24, "RestElement",
			EmptyList("decorators").Typed(),
			F("argument", 8, "AssignmentTarget"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
			Const("value", nil).Typed(),
		),
		Enum("AssignmentTargetMaybeDefault", assignmentTargetVariants, simpleAssignmentTargetVariants,
			[]VariantDef{
				V(16, "Box<AssignmentTargetWithDefault>"),
			},
		),
		Struct("AssignmentTargetWithDefault", 40, "AssignmentPattern",
			EmptyList("decorators").Typed(),
			F("left", 8, "AssignmentTarget"),
			F("right", 24, "Expression"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Enum("AssignmentTargetProperty",
			[]VariantDef{
				V(0, "Box<AssignmentTargetPropertyIdentifier>"),
				V(1, "Box<AssignmentTargetPropertyProperty>"),
			},
		),
		Struct("AssignmentTargetPropertyIdentifier", 56, "Property",
			Const("kind", "init"),
			F("key", 8, "IdentifierReference"),
			F("init", 40, "Option<Expression>").As("value"),
			Const("method", false),
			Const("shorthand", true),
			Const("computed", false),
			Const("optional", false).Typed(),
		).Hook(HookShorthandTarget),
		Struct("AssignmentTargetPropertyProperty", 48, "Property",
			Const("kind", "init"),
			F("key", 8, "PropertyKey"),
			F("value", 24, "AssignmentTargetMaybeDefault"),
			Const("method", false),
			Const("shorthand", false),
			F("computed", 40, "bool"),
			Const("optional", false).Typed(),
		),
		Struct("SequenceExpression", 32, "SequenceExpression",
			F("expressions", 8, "Vec<Expression>"),
		),
		Struct("Super", 8, "Super"),
		Struct("AwaitExpression", 24, "AwaitExpression",
			F("argument", 8, "Expression"),
		),
		Struct("ChainExpression", 24, "ChainExpression",
			F("expression", 8, "ChainElement"),
		),
		Enum("ChainElement",
			[]VariantDef{
				V(0, "Box<CallExpression>"),
				V(1, "Box<TSNonNullExpression>"),
				V(48, "Box<ComputedMemberExpression>"),
				V(49, "Box<StaticMemberExpression>"),
				V(50, "Box<PrivateFieldExpression>"),
			},
		),
		Struct("ParenthesizedExpression", 24, "ParenthesizedExpression",
			F("expression", 8, "Expression"),
		).Hook(HookParenthesized),
		Enum("Statement", declarationVariants,
			[]VariantDef{
				V(0, "Box<BlockStatement>"),
				V(1, "Box<BreakStatement>"),
				V(2, "Box<ContinueStatement>"),
				V(3, "Box<DebuggerStatement>"),
				V(4, "Box<DoWhileStatement>"),
				V(5, "Box<EmptyStatement>"),
				V(6, "Box<ExpressionStatement>"),
				V(7, "Box<ForInStatement>"),
				V(8, "Box<ForOfStatement>"),
				V(9, "Box<ForStatement>"),
				V(10, "Box<IfStatement>"),
				V(11, "Box<LabeledStatement>"),
				V(12, "Box<ReturnStatement>"),
				V(13, "Box<SwitchStatement>"),
				V(14, "Box<ThrowStatement>"),
				V(15, "Box<TryStatement>"),
				V(16, "Box<WhileStatement>"),
				V(17, "Box<WithStatement>"),
				V(64, "Box<ImportDeclaration>"),
				V(65, "Box<ExportAllDeclaration>"),
				V(66, "Box<ExportDefaultDeclaration>"),
				V(67, "Box<ExportNamedDeclaration>"),
				V(68, "Box<TSExportAssignment>"),
				V(69, "Box<TSNamespaceExportDeclaration>"),
			},
		),
		Struct("Directive", 72, "ExpressionStatement",
			F("expression", 8, "StringLiteral"),
			F("directive", 56, "Str"),
		),
		Struct("Hashbang", 24, "Hashbang",
			F("value", 8, "Str"),
		),
		Struct("BlockStatement", 32, "BlockStatement",
			F("body", 8, "Vec<Statement>"),
		),
		Enum("Declaration", declarationVariants).None(31),
		Struct("VariableDeclaration", 40, "VariableDeclaration",
			F("kind", 32, "VariableDeclarationKind"),
			F("declarations", 8, "Vec<VariableDeclarator>"),
			F("declare", 33, "bool").Typed(),
		),
		Plain("VariableDeclarationKind", "var", "let", "const", "using", "await using"),
		Struct("VariableDeclarator", 64, "VariableDeclarator",
			F("id", 8, "BindingPattern"),
			F("init", 40, "Option<Expression>"),
			F("definite", 57, "bool").Typed(),
		),
		Struct("EmptyStatement", 8, "EmptyStatement"),
		Struct("ExpressionStatement", 24, "ExpressionStatement",
			F("expression", 8, "Expression"),
			Const("directive", nil).Typed(),
		),
		Struct("IfStatement", 56, "IfStatement",
			F("test", 8, "Expression"),
			F("consequent", 24, "Statement"),
			F("alternate", 40, "Option<Statement>"),
		),
		Struct("DoWhileStatement", 40, "DoWhileStatement",
			F("body", 8, "Statement"),
			F("test", 24, "Expression"),
		),
		Struct("WhileStatement", 40, "WhileStatement",
			F("test", 8, "Expression"),
			F("body", 24, "Statement"),
		),
		Struct("ForStatement", 72, "ForStatement",
			F("init", 8, "Option<ForStatementInit>"),
			F("test", 24, "Option<Expression>"),
			F("update", 40, "Option<Expression>"),
			F("body", 56, "Statement"),
		),
		Enum("ForStatementInit", expressionVariants,
			[]VariantDef{
				V(64, "Box<VariableDeclaration>"),
			},
		),
		Struct("ForInStatement", 56, "ForInStatement",
			F("left", 8, "ForStatementLeft"),
			F("right", 24, "Expression"),
			F("body", 40, "Statement"),
		),
		Enum("ForStatementLeft", assignmentTargetVariants, simpleAssignmentTargetVariants,
			[]VariantDef{
				V(16, "Box<VariableDeclaration>"),
			},
		),
		Struct("ForOfStatement", 64, "ForOfStatement",
			F("await", 60, "bool"),
			F("left", 8, "ForStatementLeft"),
			F("right", 24, "Expression"),
			F("body", 40, "Statement"),
		),
		Struct("ContinueStatement", 32, "ContinueStatement",
			F("label", 8, "Option<LabelIdentifier>"),
		),
		Struct("BreakStatement", 32, "BreakStatement",
			F("label", 8, "Option<LabelIdentifier>"),
		),
		Struct("ReturnStatement", 24, "ReturnStatement",
			F("argument", 8, "Option<Expression>"),
		),
		Struct("WithStatement", 40, "WithStatement",
			F("object", 8, "Expression"),
			F("body", 24, "Statement"),
		),
		Struct("SwitchStatement", 48, "SwitchStatement",
			F("discriminant", 8, "Expression"),
			F("cases", 24, "Vec<SwitchCase>"),
		),
		Struct("SwitchCase", 48, "SwitchCase",
			F("test", 8, "Option<Expression>"),
			F("consequent", 24, "Vec<Statement>"),
		),
		Struct("LabeledStatement", 48, "LabeledStatement",
			F("label", 8, "LabelIdentifier"),
			F("body", 32, "Statement"),
		),
		Struct("ThrowStatement", 24, "ThrowStatement",
			F("argument", 8, "Expression"),
		),
		Struct("TryStatement", 32, "TryStatement",
			F("block", 8, "Box<BlockStatement>"),
			F("handler", 16, "Option<Box<CatchClause>>"),
			F("finalizer", 24, "Option<Box<BlockStatement>>"),
		),
		Struct("CatchClause", 56, "CatchClause",
			F("param", 8, "Option<CatchParameter>"),
			F("body", 48, "Box<BlockStatement>"),
		),
		Struct("CatchParameter", 40, "",
			F("pattern", 8, "BindingPattern"),
		).Shape(ShapeTransparent),
		Struct("DebuggerStatement", 8, "DebuggerStatement"),
		Struct("BindingPattern", 32, "",
			F("kind", 0, "BindingPatternKind"),
			F("optional", 24, "bool").Typed(),
			F("typeAnnotation", 16, "Option<Box<TSTypeAnnotation>>").Typed(),
		).Shape(ShapeMerge),
		Enum("BindingPatternKind",
			[]VariantDef{
				V(0, "Box<BindingIdentifier>"),
				V(1, "Box<ObjectPattern>"),
				V(2, "Box<ArrayPattern>"),
				V(3, "Box<AssignmentPattern>"),
			},
		),
		Struct("AssignmentPattern", 56, "AssignmentPattern",
			EmptyList("decorators").Typed(),
			F("left", 8, "BindingPattern"),
			F("right", 40, "Expression"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("ObjectPattern", 40, "ObjectPattern",
			EmptyList("decorators").Typed(),
			F("properties", 8, "Vec<BindingProperty>"),
			F("rest", 32, "Option<Box<BindingRestElement>>").As("properties").Append(),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("BindingProperty", 64, "Property",
			Const("kind", "init"),
			F("key", 8, "PropertyKey"),
			F("value", 24, "BindingPattern"),
			Const("method", false),
			F("shorthand", 56, "bool"),
			F("computed", 57, "bool"),
			Const("optional", false).Typed(),
		),
		Struct("ArrayPattern", 40, "ArrayPattern",
			EmptyList("decorators").Typed(),
			F("elements", 8, "Vec<Option<BindingPattern>>"),
			F("rest", 32, "Option<Box<BindingRestElement>>").As("elements").Append(),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
		),
		Struct("BindingRestElement", 40, "RestElement",
			EmptyList("decorators").Typed(),
			F("argument", 8, "BindingPattern"),
			Const("optional", false).Typed(),
			Const("typeAnnotation", nil).Typed(),
			Const("value", nil).Typed(),
		),
		Struct("Function", 88, "",
			F("type", 84, "FunctionType").Hidden(),
			F("id", 8, "Option<BindingIdentifier>"),
			F("generator", 85, "bool"),
			F("async", 86, "bool"),
			F("declare", 87, "bool").Typed(),
			F("typeParameters", 40, "Option<Box<TSTypeParameterDeclaration>>").Typed(),
			F("thisParam", 48, "Option<Box<TSThisParameter>>").As("params").Typed().Prepend(),
			F("params", 56, "Box<FormalParameters>"),
			F("returnType", 64, "Option<Box<TSTypeAnnotation>>").Typed(),
			F("body", 72, "Option<Box<FunctionBody>>"),
			Const("expression", false),
		).TypeFrom("type"),
		Plain("FunctionType",
			"FunctionDeclaration",
			"FunctionExpression",
			"TSDeclareFunction",
			"TSEmptyBodyFunctionExpression",
		),
		Struct("FormalParameters", 40, "",
			F("items", 8, "Vec<FormalParameter>").As("params"),
			F("rest", 32, "Option<Box<FormalParameterRest>>").As("params").Append(),
		).Shape(ShapeList),
		Struct("FormalParameterRest", 40, "RestElement",
			EmptyList("decorators").Typed(),
			F("argument", 8, "BindingPatternKind"),
			F("optional", 32, "bool").Typed(),
			F("typeAnnotation", 24, "Option<Box<TSTypeAnnotation>>").Typed(),
			Const("value", nil).Typed(),
		),
		Struct("FormalParameter", 72, "",
			F("decorators", 8, "Vec<Decorator>").Typed(),
			F("pattern", 32, "BindingPattern"),
			F("accessibility", 64, "Option<TSAccessibility>").Typed(),
			F("readonly", 65, "bool").Typed(),
			F("override", 66, "bool").Typed(),
		).Shape(ShapeCustom).Hook(HookFormalParameter).Emits("TSParameterProperty"),
		Struct("FunctionBody", 56, "BlockStatement",
			F("directives", 8, "Vec<Directive>").As("body"),
			F("statements", 32, "Vec<Statement>").As("body").Append(),
		),
		Struct("ArrowFunctionExpression", 48, "ArrowFunctionExpression",
			F("expression", 44, "bool"),
			F("async", 45, "bool"),
			F("typeParameters", 8, "Option<Box<TSTypeParameterDeclaration>>").Typed(),
			F("params", 16, "Box<FormalParameters>"),
			F("returnType", 24, "Option<Box<TSTypeAnnotation>>").Typed(),
			F("body", 32, "Box<FunctionBody>").UnwrapIf(44, "statements", "expression"),
			Const("id", nil),
			Const("generator", false),
		),
		Struct("YieldExpression", 32, "YieldExpression",
			F("delegate", 24, "bool"),
			F("argument", 8, "Option<Expression>"),
		),
		Struct("Class", 136, "",
			F("type", 132, "ClassType").Hidden(),
			F("decorators", 8, "Vec<Decorator>"),
			F("id", 32, "Option<BindingIdentifier>"),
			F("typeParameters", 64, "Option<Box<TSTypeParameterDeclaration>>").Typed(),
			F("superClass", 72, "Option<Expression>"),
			F("superTypeArguments", 88, "Option<Box<TSTypeParameterInstantiation>>").Typed(),
			F("implements", 96, "Vec<TSClassImplements>").Typed(),
			F("body", 120, "Box<ClassBody>"),
			F("abstract", 133, "bool").Typed(),
			F("declare", 134, "bool").Typed(),
		).TypeFrom("type"),
		Plain("ClassType", "ClassDeclaration", "ClassExpression"),
		Struct("ClassBody", 32, "ClassBody",
			F("body", 8, "Vec<ClassElement>"),
		),
		Enum("ClassElement",
			[]VariantDef{
				V(0, "Box<StaticBlock>"),
				V(1, "Box<MethodDefinition>"),
				V(2, "Box<PropertyDefinition>"),
				V(3, "Box<AccessorProperty>"),
				V(4, "Box<TSIndexSignature>"),
			},
		),
		Struct("MethodDefinition", 64, "",
			F("type", 56, "MethodDefinitionType").Hidden(),
			F("decorators", 8, "Vec<Decorator>"),
			F("key", 32, "PropertyKey"),
			F("value", 48, "Box<Function>"),
			F("kind", 57, "MethodDefinitionKind"),
			F("computed", 58, "bool"),
			F("static", 59, "bool"),
			F("override", 60, "bool").Typed(),
			F("optional", 61, "bool").Typed(),
			F("accessibility", 62, "Option<TSAccessibility>").Typed(),
		).TypeFrom("type"),
		Plain("MethodDefinitionType", "MethodDefinition", "TSAbstractMethodDefinition"),
		Struct("PropertyDefinition", 88, "",
			F("type", 72, "PropertyDefinitionType").Hidden(),
			F("decorators", 8, "Vec<Decorator>"),
			F("key", 32, "PropertyKey"),
			F("typeAnnotation", 48, "Option<Box<TSTypeAnnotation>>").Typed(),
			F("value", 56, "Option<Expression>"),
			F("computed", 73, "bool"),
			F("static", 74, "bool"),
			F("declare", 75, "bool").Typed(),
			F("override", 76, "bool").Typed(),
			F("optional", 77, "bool").Typed(),
			F("definite", 78, "bool").Typed(),
			F("readonly", 79, "bool").Typed(),
			F("accessibility", 80, "Option<TSAccessibility>").Typed(),
		).TypeFrom("type"),
		Plain("PropertyDefinitionType", "PropertyDefinition", "TSAbstractPropertyDefinition"),
		Plain("MethodDefinitionKind", "constructor", "method", "get", "set"),
		Struct("PrivateIdentifier", 24, "PrivateIdentifier",
			F("name", 8, "Str"),
		),
		Struct("StaticBlock", 32, "StaticBlock",
			F("body", 8, "Vec<Statement>"),
		),
		Plain("AccessorPropertyType", "AccessorProperty", "TSAbstractAccessorProperty"),
		Struct("AccessorProperty", 80, "",
			F("type", 72, "AccessorPropertyType").Hidden(),
			F("decorators", 8, "Vec<Decorator>"),
			F("key", 32, "PropertyKey"),
			F("typeAnnotation", 48, "Option<Box<TSTypeAnnotation>>").Typed(),
			F("value", 56, "Option<Expression>"),
			F("computed", 73, "bool"),
			F("static", 74, "bool"),
			F("override", 75, "bool").Typed(),
			F("definite", 76, "bool").Typed(),
			F("accessibility", 77, "Option<TSAccessibility>").Typed(),
			Const("declare", false).Typed(),
			Const("optional", false).Typed(),
			Const("readonly", false).Typed(),
		).TypeFrom("type"),
		Struct("ImportExpression", 48, "ImportExpression",
			F("source", 8, "Expression"),
			F("options", 24, "Option<Expression>"),
			F("phase", 40, "Option<ImportPhase>"),
		),
		Struct("ImportDeclaration", 96, "ImportDeclaration",
			F("specifiers", 8, "Option<Vec<ImportDeclarationSpecifier>>").EmptyIfNil(),
			F("source", 32, "StringLiteral"),
			F("phase", 88, "Option<ImportPhase>"),
			F("withClause", 80, "Option<Box<WithClause>>").As("attributes").Select("attributes"),
			F("importKind", 89, "ImportOrExportKind").Typed(),
		),
		Plain("ImportPhase", "source", "defer"),
		Enum("ImportDeclarationSpecifier",
			[]VariantDef{
				V(0, "Box<ImportSpecifier>"),
				V(1, "Box<ImportDefaultSpecifier>"),
				V(2, "Box<ImportNamespaceSpecifier>"),
			},
		),
		Struct("ImportSpecifier", 104, "ImportSpecifier",
			F("imported", 8, "ModuleExportName"),
			F("local", 64, "BindingIdentifier"),
			F("importKind", 96, "ImportOrExportKind").Typed(),
		),
		Struct("ImportDefaultSpecifier", 32, "ImportDefaultSpecifier",
			F("local", 8, "BindingIdentifier"),
		),
		Struct("ImportNamespaceSpecifier", 32, "ImportNamespaceSpecifier",
			F("local", 8, "BindingIdentifier"),
		),
		Record("WithClause", 32,
			F("attributes", 8, "Vec<ImportAttribute>"),
		),
		Struct("ImportAttribute", 112, "ImportAttribute",
			F("key", 8, "ImportAttributeKey"),
			F("value", 64, "StringLiteral"),
		),
		Enum("ImportAttributeKey",
			[]VariantDef{
				V(0, "IdentifierName"),
				V(1, "StringLiteral"),
			},
		),
		Struct("ExportNamedDeclaration", 112, "ExportNamedDeclaration",
			F("declaration", 8, "Option<Declaration>"),
			F("specifiers", 24, "Vec<ExportSpecifier>"),
			F("source", 48, "Option<StringLiteral>"),
			F("exportKind", 104, "ImportOrExportKind").Typed(),
			F("withClause", 96, "Option<Box<WithClause>>").As("attributes").Select("attributes"),
		),
		Struct("ExportDefaultDeclaration", 24, "ExportDefaultDeclaration",
			F("declaration", 8, "ExportDefaultDeclarationKind"),
			Const("exportKind", "value").Typed(),
		),
		Struct("ExportAllDeclaration", 128, "ExportAllDeclaration",
			F("exported", 8, "Option<ModuleExportName>"),
			F("source", 64, "StringLiteral"),
			F("withClause", 112, "Option<Box<WithClause>>").As("attributes").Select("attributes"),
			F("exportKind", 120, "ImportOrExportKind").Typed(),
		),
		Struct("ExportSpecifier", 128, "ExportSpecifier",
			F("local", 8, "ModuleExportName"),
			F("exported", 64, "ModuleExportName"),
			F("exportKind", 120, "ImportOrExportKind").Typed(),
		),
		Enum("ExportDefaultDeclarationKind", expressionVariants,
			[]VariantDef{
				V(64, "Box<Function>"),
				V(65, "Box<Class>"),
				V(66, "Box<TSInterfaceDeclaration>"),
			},
		),
		Enum("ModuleExportName",
			[]VariantDef{
				V(0, "IdentifierName"),
				V(1, "IdentifierReference"),
				V(2, "StringLiteral"),
			},
		),
		Struct("V8IntrinsicExpression", 56, "V8IntrinsicExpression",
			F("name", 8, "IdentifierName"),
			F("arguments", 32, "Vec<Argument>"),
		),

		// literals
		Struct("BooleanLiteral", 12, "Literal",
			F("value", 8, "bool"),
			Const("raw", nil),
		).Hook(HookLiteralRaw),
		Struct("NullLiteral", 8, "Literal",
			Const("value", nil),
			Const("raw", nil),
		).Hook(HookLiteralRaw),
		Struct("NumericLiteral", 32, "Literal",
			F("value", 8, "f64"),
			F("raw", 16, "Option<Str>"),
		),
		Struct("StringLiteral", 48, "Literal",
			F("value", 8, "Str").EscapeIf(40),
			F("raw", 24, "Option<Str>"),
			F("loneSurrogates", 40, "bool").Hidden(),
		),
		Struct("BigIntLiteral", 40, "Literal",
			Const("value", nil),
			F("raw", 24, "Option<Str>"),
			F("bigint", 8, "Str"),
		).Hook(HookBigInt),
		Struct("RegExpLiteral", 56, "Literal",
			Const("value", nil),
			F("raw", 40, "Option<Str>"),
			Const("regex", nil),
			F("pattern", 8, "Str").Hidden(),
			F("flags", 32, "u8").Hidden(),
		).Hook(HookRegExp),

		// comments
		Plain("CommentKind", "Line", "Block", "Block"),
		Struct("Comment", 16, "",
			F("kind", 12, "CommentKind").Hidden(),
			Const("value", ""),
		).TypeFrom("kind").Trivia().Hook(HookComment),

		// operators
		Plain("AssignmentOperator",
			"=",
			"+=",
			"-=",
			"*=",
			"/=",
			"%=",
			"**=",
			"<<=",
			">>=",
			">>>=",
			"|=",
			"^=",
			"&=",
			"||=",
			"&&=",
			"??=",
		),
		Plain("BinaryOperator",
			"==",
			"!=",
			"===",
			"!==",
			"<",
			"<=",
			">",
			">=",
			"+",
			"-",
			"*",
			"/",
			"%",
			"**",
			"<<",
			">>",
			">>>",
			"|",
			"^",
			"&",
			"in",
			"instanceof",
		),
		Plain("LogicalOperator", "||", "&&", "??"),
		Plain("UnaryOperator", "+", "-", "!", "~", "typeof", "void", "delete"),
		Plain("UpdateOperator", "++", "--"),
	}
}
