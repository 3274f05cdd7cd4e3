// Package validate provides argument validation for callables.
//
// A Validator binds an invocation's arguments to declared parameter
// names (positional by position, named by name, defaults applied) and
// checks configured parameters against expected kinds before the inner
// callable runs. On mismatch the invocation fails with an *Error naming
// the parameter, the expected kind and the actual type, and the inner
// callable is not invoked.
package validate
