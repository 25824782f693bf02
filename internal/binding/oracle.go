package binding

// Oracle is the resolved-binding capability the symbol layer reads from.
// Every query is resolvable-or-absent: missing data is reported with
// NoTypeID, NoMethodID, nil or false, never with an error or a panic.
type Oracle interface {
	Type(id TypeID) *TypeInfo
	Method(id MethodID) *MethodInfo
	Lookup(qualifiedName string) TypeID

	DeclaringType(m MethodID) TypeID
	ParameterTypes(m MethodID) []TypeID
	ReturnType(m MethodID) TypeID
	ThrownTypes(m MethodID) []TypeID
	// Overrides reports whether m overrides candidate.
	Overrides(m, candidate MethodID) bool

	Superclass(t TypeID) TypeID
	Interfaces(t TypeID) []TypeID
	DeclaredMethods(t TypeID) []MethodID
	IsInterface(t TypeID) bool
}

// ObjectName is the root of the class hierarchy.
const ObjectName = "java.lang.Object"
