package rules

// Defaults returns the built-in rule set in registration order.
func Defaults() []Rule {
	return []Rule{
		NewGenericContainerType(DefaultGenericArgs),
		NewReturnType("mixed"),
		NewRemoveUnusedUse(),
		NewIgnoreNextLine(),
		NewVarDocblock(""),
	}
}
