package compiler

// Diagnostic codes emitted after ingestion. Definition problems use the
// E1xx validation codes.
const (
	// Roots and resolution (E200-E299)
	CodeUnresolved      = "E201" // formula never resolved: missing key or cycle
	CodeEmptyDerivation = "E202" // derivation produced an empty form

	// Phonotactics (E300-E399, W300-W399)
	CodePhonotactic  = "E301" // root violates a constraint
	CodeLongRoot     = "E302" // root at or above the length limit
	CodeFormulaShape = "W311" // compound or idiom violates a constraint

	// Collisions (E400-E499, W400-W499)
	CodeHomophone = "W401" // shared form, different glosses
	CodeDuplicate = "E402" // shared form and gloss

	// Advisory notes (I500-I599)
	CodeReferenceCycle  = "I501" // unresolved entries form a reference cycle
	CodeDerivationDrift = "I502" // literal form differs from its derivation
)
