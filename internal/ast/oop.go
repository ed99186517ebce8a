package ast

import (
	"fmt"

	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/types"
)

// MethodLookup compiles `obj.name` into a bound-expression: evaluating it
// evaluates obj, then returns a new callable value whose signature drops
// the receiver from each candidate method's inputs; the chosen candidate
// is selected at call time by the expected function type flowing from the
// call site. A failed lookup is a compile-time
// error (package compiler), not representable as a MethodLookup node.
type MethodLookup struct {
	base
	Receiver Node
	Name     ident.Identifier
	Members  []otype.Member
	// BoundTypes is the set of function types the bound value can report,
	// i.e. each candidate's signature with the receiver input dropped.
	BoundTypes []types.Type
}

func NewMethodLookup(pos Position, receiver Node, name ident.Identifier, members []otype.Member, boundTypes []types.Type) *MethodLookup {
	return &MethodLookup{base: base{pos: pos, purity: receiver.Purity()}, Receiver: receiver, Name: name, Members: members, BoundTypes: boundTypes}
}

func (m *MethodLookup) Types() []types.Type       { return m.BoundTypes }
func (m *MethodLookup) ReturnTypes() []types.Type { return m.Receiver.ReturnTypes() }

func (m *MethodLookup) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	receiverTypes := m.Receiver.Types()
	var want types.Type
	if len(receiverTypes) > 0 {
		want = receiverTypes[0]
	}
	out, err := ctx.Bounce(m.Receiver, want)
	if err != nil || out.Returning {
		return out, err
	}
	bound := ctx.BindMethod(out.Value, m.Members)
	return Output{Value: bound}, nil
}

// NamespaceBody sets the trampoline's environment to the named namespace
// environment (already registered under the enclosing scope by package
// compiler) for the duration of Body's evaluation, then restores it.
type NamespaceBody struct {
	base
	Name ident.Identifier
	Body Node
}

func NewNamespaceBody(pos Position, name ident.Identifier, body Node) *NamespaceBody {
	return &NamespaceBody{base: base{pos: pos, purity: body.Purity()}, Name: name, Body: body}
}

func (n *NamespaceBody) Types() []types.Type       { return n.Body.Types() }
func (n *NamespaceBody) ReturnTypes() []types.Type { return n.Body.ReturnTypes() }

func (n *NamespaceBody) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	ns, ok := ctx.Env().Namespace(n.Name)
	if !ok {
		return Output{}, fmt.Errorf("unknown namespace: %s", n.Name)
	}
	return ctx.WithEnv(ns, func() (Output, error) {
		return ctx.Bounce(n.Body, expected)
	})
}

// ClassBody tracks a class declaration's member-statement sequence for
// compile-time purposes (types/purity propagation), evaluating to produce
// an instance environment. The actual instance construction — opening a
// fresh scope, defining each field in it with its zero value, and
// wrapping the result as a user-object value — is performed by the
// synthesised
// constructor callable package compiler builds, not by
// evaluating this node directly in the ordinary expression position.
type ClassBody struct {
	base
	Body Node
}

func NewClassBody(pos Position, body Node) *ClassBody {
	return &ClassBody{base: base{pos: pos, purity: body.Purity()}, Body: body}
}

func (c *ClassBody) Types() []types.Type       { return nil }
func (c *ClassBody) ReturnTypes() []types.Type { return nil }

func (c *ClassBody) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	return ctx.Bounce(c.Body, types.Void)
}
