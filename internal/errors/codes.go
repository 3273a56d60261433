// Package errors provides the kernel's flat diagnostic taxonomy.
// Every error the kernel raises carries one of these codes so that
// callers can classify failures without parsing message text.
package errors

// Error code constants, one family per kernel error kind (spec §7).
const (
	// Shape errors: script statement does not match the next environment spec. Fatal.
	SHP001 = "SHP001" // incorrect step
	SHP002 = "SHP002" // spec queue not empty at end of script
	SHP003 = "SHP003" // spec queue exhausted before script

	// Scoping errors.
	SCP001 = "SCP001" // duplicate variable in context
	SCP002 = "SCP002" // unbound dependency
	SCP003 = "SCP003" // duplicate heap name (Let re-binding)
	SCP004 = "SCP004" // missing subproof / unknown heap name

	// Sort errors.
	SRT001 = "SRT001" // unknown sort
	SRT002 = "SRT002" // strict-sort bind
	SRT003 = "SRT003" // pure-sort return
	SRT004 = "SRT004" // non-provable conclusion/hypothesis

	// Typing errors.
	TYP001 = "TYP001" // unknown term
	TYP002 = "TYP002" // arity mismatch
	TYP003 = "TYP003" // sort/type mismatch
	TYP004 = "TYP004" // non-bound value in BV slot
	TYP005 = "TYP005" // undeclared variable

	// Disjoint-variable errors.
	DV001 = "DV001" // disjoint-variable violation
	DV002 = "DV002" // capture by bound argument

	// Proof errors.
	PRF001 = "PRF001" // hypothesis-list mismatch
	PRF002 = "PRF002" // conversion endpoint mismatch
	PRF003 = "PRF003" // sorry is not a proof
	PRF004 = "PRF004" // declared conclusion does not match verified result
	PRF005 = "PRF005" // dummy variable at free sort (a strict-sort dummy reports SRT002)

	// IO errors.
	IO001 = "IO001" // input byte mismatch
	IO002 = "IO002" // unexpected end of input, or input left unconsumed
	IO003 = "IO003" // unsupported term in IO expression
	IO004 = "IO004" // definition with dummies in IO expression

	// Internal errors: axiomatization bugs, reported not panicked.
	INT001 = "INT001" // output reduction produced a bare nibble at top level
)

// ErrorInfo documents a code: its kind and a short description.
type ErrorInfo struct {
	Code        string
	Kind        string
	Description string
}

// ErrorRegistry maps every code to its documentation.
var ErrorRegistry = map[string]ErrorInfo{
	SHP001: {SHP001, "shape", "script statement does not match next environment spec"},
	SHP002: {SHP002, "shape", "environment spec queue not exhausted"},
	SHP003: {SHP003, "shape", "environment spec queue exhausted before script"},
	SCP001: {SCP001, "scoping", "duplicate variable"},
	SCP002: {SCP002, "scoping", "unbound dependency"},
	SCP003: {SCP003, "scoping", "duplicate heap binding"},
	SCP004: {SCP004, "scoping", "missing subproof on heap"},
	SRT001: {SRT001, "sort", "unknown sort"},
	SRT002: {SRT002, "sort", "variable bound at strict sort"},
	SRT003: {SRT003, "sort", "term returns a pure sort"},
	SRT004: {SRT004, "sort", "non-provable sort used as hypothesis/conclusion"},
	TYP001: {TYP001, "typing", "unknown term"},
	TYP002: {TYP002, "typing", "arity mismatch"},
	TYP003: {TYP003, "typing", "sort mismatch"},
	TYP004: {TYP004, "typing", "non-bound expression in BV slot"},
	TYP005: {TYP005, "typing", "undeclared variable"},
	DV001:  {DV001, "dv", "disjoint-variable violation"},
	DV002:  {DV002, "dv", "capture by later bound argument"},
	PRF001: {PRF001, "proof", "hypothesis list mismatch"},
	PRF002: {PRF002, "proof", "conversion endpoint mismatch"},
	PRF003: {PRF003, "proof", "incomplete proof (sorry)"},
	PRF004: {PRF004, "proof", "declaration claim does not match verified result"},
	PRF005: {PRF005, "proof", "dummy variable at free sort"},
	IO001:  {IO001, "io", "input byte mismatch"},
	IO002:  {IO002, "io", "unexpected end of input, or input not fully consumed"},
	IO003:  {IO003, "io", "term not supported in IO reduction"},
	IO004:  {IO004, "io", "definition with dummies in IO reduction"},
	INT001: {INT001, "internal", "impossible output reduction (bad axiom set)"},
}

// IsFatal reports whether the error kind always aborts the run rather
// than being captured as a per-declaration diagnostic (spec §7).
func IsFatal(code string) bool {
	info, ok := ErrorRegistry[code]
	return ok && info.Kind == "shape"
}
