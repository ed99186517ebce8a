package stdlib

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// timeObject and durationObject are simple host object payloads with no
// GC-tracked neighbours of their own (a time.Time/time.Duration holds no
// references into the VM's object graph), so their Expand is always nil —
// they ride on Go's own GC the way §5's "non-GC resources... are the
// host's responsibility" describes for anything the pool doesn't need to
// trace.
type timeObject struct{ t time.Time }

func (o *timeObject) TypeName() ident.Identifier   { return "Time" }
func (o *timeObject) Expand() []*gcpool.Handle      { return nil }

type durationObject struct{ d time.Duration }

func (o *durationObject) TypeName() ident.Identifier { return "Duration" }
func (o *durationObject) Expand() []*gcpool.Handle   { return nil }

func asTime(v value.Value) (*timeObject, error) {
	o, ok := v.Object().(*timeObject)
	if !ok {
		return nil, rterr.New(rterr.KindNativeBindingFailure, "expected a Time value")
	}
	return o, nil
}

func asDuration(v value.Value) (*durationObject, error) {
	o, ok := v.Object().(*durationObject)
	if !ok {
		return nil, rterr.New(rterr.KindNativeBindingFailure, "expected a Duration value")
	}
	return o, nil
}

// RegisterTime wires the Time and Duration host object types (§6.2),
// grounded directly on the original `vm/time.cc`'s RegisterTimeType: the
// same four Time members (tostring, AddDays, format, year — plus Now/
// ParseTime as free functions) and the same Duration/Seconds/
// DurationBetween shape, ported from strftime/strptime to Go's time
// package and github.com/ncruces/go-strftime for the format half (Go's
// standard library has no strptime/strftime equivalent).
func RegisterTime(pool *gcpool.Pool, env *scope.Environment) {
	timeType := types.Object("Time")
	durationType := types.Object("Duration")

	registerTable(env, "Time", func(t *otype.ObjectType) {
		method(pool, t, "tostring", timeType, nil, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asTime(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Str(fmt.Sprintf("%d.%09d", o.t.Unix(), o.t.Nanosecond())), nil
		})
		method(pool, t, "AddDays", timeType, []types.Type{types.Number}, timeType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asTime(args[0])
			if err != nil {
				return value.Value{}, err
			}
			days, err := args[1].Number().ToInteger()
			if err != nil {
				return value.Value{}, rterr.New(rterr.KindNumericConversion, "AddDays: %v", err)
			}
			return value.Obj("Time", &timeObject{t: o.t.AddDate(0, 0, int(days))}), nil
		})
		method(pool, t, "format", timeType, []types.Type{types.String}, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asTime(args[0])
			if err != nil {
				return value.Value{}, err
			}
			out, err := strftime.Format(args[1].Str(), o.t)
			if err != nil {
				return value.Value{}, rterr.New(rterr.KindTimeFormat, "format: %v", err)
			}
			return value.Str(out), nil
		})
		method(pool, t, "year", timeType, nil, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asTime(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Num(numeric.Int(int64(o.t.Year()))), nil
		})
	})

	registerTable(env, "Duration", func(t *otype.ObjectType) {
		method(pool, t, "days", durationType, nil, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asDuration(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Num(numeric.Int(int64(o.d.Hours() / 24))), nil
		})
	})

	freeFn(pool, env, "Now", nil, timeType, types.Reader, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		return value.Obj("Time", &timeObject{t: time.Now()}), nil
	})

	freeFn(pool, env, "ParseTime", []types.Type{types.String, types.String}, timeType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		goLayout, err := strftimeToGoLayout(args[1].Str())
		if err != nil {
			return value.Value{}, rterr.New(rterr.KindTimeFormat, "ParseTime: %v", err)
		}
		parsed, err := time.Parse(goLayout, args[0].Str())
		if err != nil {
			return value.Value{}, rterr.New(rterr.KindTimeFormat, "ParseTime: %v", err)
		}
		return value.Obj("Time", &timeObject{t: parsed}), nil
	})

	freeFn(pool, env, "Seconds", []types.Type{types.Number}, durationType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		n, err := args[0].Number().ToInteger()
		if err != nil {
			return value.Value{}, rterr.New(rterr.KindNumericConversion, "Seconds: %v", err)
		}
		return value.Obj("Duration", &durationObject{d: time.Duration(n) * time.Second}), nil
	})

	freeFn(pool, env, "DurationBetween", []types.Type{timeType, timeType}, durationType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		a, err := asTime(args[0])
		if err != nil {
			return value.Value{}, err
		}
		b, err := asTime(args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.Obj("Duration", &durationObject{d: a.t.Sub(b.t)}), nil
	})
}

// strftimeToGoLayout converts the common strftime directives §6.2's
// Time.format/ParseTime use into a Go reference-time layout string. Go's
// standard library exposes no strptime; this covers the directives the
// original `vm/time.cc` exercises (year, month, day, hour, minute,
// second) rather than the full strftime grammar.
func strftimeToGoLayout(format string) (string, error) {
	replacer := strings.NewReplacer(
		"%Y", "2006", "%y", "06",
		"%m", "01", "%d", "02",
		"%H", "15", "%M", "04", "%S", "05",
		"%Z", "MST", "%z", "-0700",
		"%%", "%",
	)
	out := replacer.Replace(format)
	if strings.Contains(out, "%") {
		return "", fmt.Errorf("unsupported strftime directive in %q", format)
	}
	return out, nil
}
