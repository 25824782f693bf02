package binding

// TypeID identifies a type handle inside a Table.
type TypeID uint32

// NoTypeID marks an absent or unresolvable type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to an allocated type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// MethodID identifies a method handle inside a Table.
type MethodID uint32

// NoMethodID marks an absent method binding.
const NoMethodID MethodID = 0

// IsValid reports whether the id refers to an allocated method.
func (id MethodID) IsValid() bool { return id != NoMethodID }
