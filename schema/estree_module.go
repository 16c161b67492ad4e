package schema

// moduleDefs declares the module record, diagnostics and the buffer root.
func moduleDefs() []*Def {
	return []*Def{
		Record("NameSpan", 24,
			F("value", 8, "Str"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Record("ImportEntry", 96,
			F("importName", 32, "ImportImportName"),
			F("localName", 64, "NameSpan"),
			F("isType", 88, "bool"),
		),
		Enum("ImportImportName",
			[]VariantDef{
				V(0, "NamedModuleName"),
				V(1, "NamespaceObjectName"),
				V(2, "DefaultModuleName"),
			},
		),
		Record("NamedModuleName", 24,
			Const("kind", "Name"),
			F("name", 8, "Str"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Record("DefaultModuleName", 8,
			Const("kind", "Default"),
			Const("name", nil),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Record("DefaultLocalName", 24,
			Const("kind", "Default"),
			F("name", 8, "Str"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Record("NamespaceObjectName", 0,
			Const("kind", "NamespaceObject"),
			Const("name", nil),
			Const("start", nil),
			Const("end", nil),
		),
		Record("AllModuleName", 0,
			Const("kind", "All"),
			Const("name", nil),
			Const("start", nil),
			Const("end", nil),
		),
		Record("AllButDefaultModuleName", 0,
			Const("kind", "AllButDefault"),
			Const("name", nil),
			Const("start", nil),
			Const("end", nil),
		),
		Record("NoModuleName", 0,
			Const("kind", "None"),
			Const("name", nil),
			Const("start", nil),
			Const("end", nil),
		),
		Record("ExportEntry", 144,
			F("moduleRequest", 16, "Option<NameSpan>"),
			F("importName", 40, "ExportImportName"),
			F("exportName", 72, "ExportExportName"),
			F("localName", 104, "ExportLocalName"),
			F("isType", 136, "bool"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Enum("ExportImportName",
			[]VariantDef{
				V(0, "NamedModuleName"),
				V(1, "AllModuleName"),
				V(2, "AllButDefaultModuleName"),
				V(3, "NoModuleName"),
			},
		),
		Enum("ExportExportName",
			[]VariantDef{
				V(0, "NamedModuleName"),
				V(1, "DefaultModuleName"),
				V(2, "NoModuleName"),
			},
		),
		Enum("ExportLocalName",
			[]VariantDef{
				V(0, "NamedModuleName"),
				V(1, "DefaultLocalName"),
				V(2, "NoModuleName"),
			},
		),
		Record("DynamicImport", 16,
			F("moduleRequest", 8, "Span"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),

		// spans
		Record("Span", 8,
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Plain("ModuleKind", "script", "module"),

		// buffer root
		Record("RawTransferData", 280,
			F("program", 0, "Program"),
			F("comments", 128, "Vec<Comment>"),
			F("module", 152, "EcmaScriptModule"),
			F("errors", 256, "Vec<Error>"),
		),
		Record("Error", 80,
			F("severity", 72, "ErrorSeverity"),
			F("message", 0, "Str"),
			F("labels", 16, "Vec<ErrorLabel>"),
			F("helpMessage", 40, "Option<Str>"),
			F("codeframe", 56, "Str"),
		),
		Plain("ErrorSeverity", "Error", "Warning", "Advice"),
		Record("ErrorLabel", 24,
			F("message", 8, "Option<Str>"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Record("EcmaScriptModule", 104,
			F("hasModuleSyntax", 96, "bool"),
			F("staticImports", 0, "Vec<StaticImport>"),
			F("staticExports", 24, "Vec<StaticExport>"),
			F("dynamicImports", 48, "Vec<DynamicImport>"),
			F("importMetas", 72, "Vec<Span>"),
		),
		Record("StaticImport", 56,
			F("moduleRequest", 8, "NameSpan"),
			F("entries", 32, "Vec<ImportEntry>"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
		Record("StaticExport", 32,
			F("entries", 8, "Vec<ExportEntry>"),
			F("start", 0, "u32"),
			F("end", 4, "u32"),
		),
	}
}
