/*
Package equal provides structural deep equality for arbitrary Go values.

Two values are structurally equal when they have the same dynamic type and
every exported field, map key or slice index present on one side is present
on the other side with an equal value. Unexported struct fields are treated
as internal state of the owning type and are never compared. Identical
references (pointers, maps, slices, funcs, chans) are equal without looking
inside them.

A consequence is that values of a struct type with no exported fields are
always equal to each other. Two different time.Time values compare equal,
for example; compare such values with their own Equal method.

Unlike a naive recursive comparison, cyclic inputs terminate: re-entering a
pair of references that is already being compared yields ErrCycle. An
optional depth bound can be set with WithMaxDepth.
*/
package equal
