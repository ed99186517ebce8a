package compiler

import (
	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/callable"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/parser"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// classField is one resolved `type name;` member of a class body, carried
// between the field-resolution pass and the accessor-synthesis pass below
// so both see the same declaration order.
type classField struct {
	name ident.Identifier
	typ  types.Type
}

// compileClassDecl implements §4.5's object-type registry steps: open a
// sub-environment, compile the body there, then on close build the
// ObjectType, synthesise field accessors, register the type, and define
// the constructor under the class's own name.
func (c *Compiler) compileClassDecl(n *parser.ClassDecl) ast.Node {
	pos := toPos(n.Pos)
	name := ident.Identifier(n.Name)

	objType := otype.New(name)
	classType := objType.ObjectNameType()

	classSym := newSymtab(c.sym)
	classEnv := c.env.NewChild()
	// Registered early (before Members are populated) so a method's own
	// signature may refer to the class by name, the same way a recursive
	// function's own name is pre-declared in compileFuncDef.
	classSym.defineObjectType(objType)

	fields := make([]classField, 0, len(n.Fields))
	for _, f := range n.Fields {
		ft, ok := c.resolveTypeOrError(f.Pos, f.Type)
		if !ok {
			ft = types.Void
		}
		if ft.Kind == types.KindObject || ft.Kind == types.KindFunction {
			c.errorf(f.Pos, "class field %q: %s has no default value", f.Name, ft)
			ft = types.Number
		}
		fields = append(fields, classField{name: ident.Identifier(f.Name), typ: ft})
		classSym.define(ident.Identifier(f.Name), ft)
	}

	prevSym, prevEnv := c.sym, c.env
	c.sym, c.env = classSym, classEnv

	for _, f := range fields {
		registerFieldAccessors(c.pool, objType, name, f)
	}
	for i := range n.Methods {
		c.compileClassMethod(objType, classType, &n.Methods[i])
	}

	c.sym, c.env = prevSym, prevEnv

	c.sym.defineObjectType(objType)
	c.env.DefineObjectType(objType)

	ctorType := types.Function(classType, nil, types.Unknown)
	ctor := &callable.Function{
		Output: classType,
		Purity: types.Unknown,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			instEnv := classEnv.NewChild()
			for _, f := range fields {
				instEnv.Define(f.name, f.typ, zeroValue(f.typ))
			}
			inst := instEnv.NewInstance(objType)
			return value.Obj(name, inst), nil
		},
	}
	ctor.Register(c.pool)
	c.sym.define(name, ctorType)
	c.env.Define(name, ctorType, value.Fn(ctorType, ctor))

	return ast.NewConstant(pos, value.Void)
}

// compileClassMethod compiles one explicitly-declared method body against
// a child symtab carrying its parameters, the same shape compileFuncDef
// builds for a namespace-level function, then registers it as a member
// taking the instance as an implicit first input. c.sym/c.env are assumed
// to already be the class's own scope (so bare field references resolve).
func (c *Compiler) compileClassMethod(objType *otype.ObjectType, classType types.Type, n *parser.FuncDef) {
	name := ident.Identifier(n.Name)

	output, ok := c.resolveTypeOrError(n.Pos, n.Output)
	if !ok {
		output = types.Void
	}
	inputs := make([]types.Type, len(n.Params))
	params := make([]ident.Identifier, len(n.Params))
	child := newSymtab(c.sym)
	for i, p := range n.Params {
		t, ok := c.resolveTypeOrError(n.Pos, p.Type)
		if !ok {
			t = types.Void
		}
		inputs[i] = t
		params[i] = ident.Identifier(p.Name)
		child.define(params[i], t)
	}

	prevSym := c.sym
	c.sym = child
	body := c.compileBlockBody(n.Body)
	c.sym = prevSym

	fn := &callable.Function{
		Inputs:   append([]types.Type{classType}, inputs...),
		Output:   output,
		Purity:   types.Unknown,
		Params:   params,
		Body:     body,
		Captured: c.env,
	}
	fn.Register(c.pool)
	objType.AddMember(name, fn)
}

// registerFieldAccessors synthesises f's getter (`fn(instance: C) -> T`)
// and, since every class field is mutable, its setter
// (`fn(instance: C, v: T) -> C`, returning the instance so
// `p.set_a(1).set_b(2)` chains).
func registerFieldAccessors(pool *gcpool.Pool, t *otype.ObjectType, className ident.Identifier, f classField) {
	recv := t.ObjectNameType()

	getter := &callable.Function{
		Inputs: []types.Type{recv},
		Output: f.typ,
		Purity: types.Reader,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			inst, err := asInstance(args[0])
			if err != nil {
				return value.Value{}, err
			}
			v, ok := inst.Get(f.name, f.typ)
			if !ok {
				return value.Value{}, rterr.New(rterr.KindNativeBindingFailure, "field %q not set on %s instance", f.name, className)
			}
			return v, nil
		},
	}
	getter.Register(pool)
	t.AddMember(f.name, getter)

	setter := &callable.Function{
		Inputs: []types.Type{recv, f.typ},
		Output: recv,
		Purity: types.Unknown,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			inst, err := asInstance(args[0])
			if err != nil {
				return value.Value{}, err
			}
			inst.Set(f.name, f.typ, args[1])
			return args[0], nil
		},
	}
	setter.Register(pool)
	t.AddMember(ident.Identifier("set_"+string(f.name)), setter)
}

func asInstance(v value.Value) (*otype.Instance, error) {
	inst, ok := v.Object().(*otype.Instance)
	if !ok {
		return nil, rterr.New(rterr.KindNativeBindingFailure, "expected an object instance")
	}
	return inst, nil
}

// zeroValue is the default a class field holds the moment its instance is
// constructed, since the grammar gives `type name;` no initialiser.
func zeroValue(t types.Type) value.Value {
	switch t.Kind {
	case types.KindBool:
		return value.Bool(false)
	case types.KindString:
		return value.Str("")
	case types.KindSymbol:
		return value.Sym("")
	default:
		return value.Num(numeric.Int(0))
	}
}
