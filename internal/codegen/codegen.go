package codegen

import (
	"fortio.org/safecast"

	"github.com/rknit/whiskc/internal/bytecode"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/symbols"
)

type generator struct {
	table   *symbols.Table
	funcs   map[symbols.FuncID]int // index into Program.Funcs
	externs map[symbols.FuncID]int // index into Program.Externs
}

// Generate compiles every function of m. Extern declarations become the
// program's extern table. When m defines main, a __start stub calling it is
// appended and becomes the entry point.
func Generate(m *hir.Module, table *symbols.Table) (*bytecode.Program, error) {
	g := &generator{
		table:   table,
		funcs:   make(map[symbols.FuncID]int),
		externs: make(map[symbols.FuncID]int),
	}
	prog := &bytecode.Program{Entry: -1}

	for _, f := range m.Funcs {
		params, err := safecast.Conv[uint32](len(f.Params))
		if err != nil {
			return nil, &Error{Kind: ErrTooManyLocals, Func: f.Name, Span: f.Span}
		}
		returns := f.Result != table.Unit
		if f.IsExtern() {
			g.externs[f.ID] = len(prog.Externs)
			prog.Externs = append(prog.Externs, bytecode.Extern{Name: f.Name, NumParams: params, ReturnsValue: returns})
			continue
		}
		g.funcs[f.ID] = len(prog.Funcs)
		prog.Funcs = append(prog.Funcs, bytecode.Function{Name: f.Name, NumParams: params, ReturnsValue: returns})
	}

	for _, f := range m.Funcs {
		if f.IsExtern() {
			continue
		}
		out := &prog.Funcs[g.funcs[f.ID]]
		if err := g.genFunc(f, out); err != nil {
			return nil, err
		}
	}

	if main, ok := prog.FuncIndex("main"); ok {
		prog.Entry = len(prog.Funcs)
		prog.Funcs = append(prog.Funcs, bytecode.Function{
			Name: bytecode.StartFunc,
			Code: []bytecode.Inst{bytecode.IA(bytecode.OpCall, int64(main)), bytecode.I(bytecode.OpHlt)},
		})
	}
	return prog, nil
}

func (g *generator) genFunc(f *hir.Func, out *bytecode.Function) error {
	fg := &funcGen{g: g, fn: f}
	fg.pushBound()
	for _, p := range f.Params {
		fg.bind(p.Var)
	}
	if err := fg.stmts(f.Body); err != nil {
		return err
	}
	if last := f.Body.LastStmt(); last == nil || last.Kind != hir.StmtReturn {
		if f.Result == g.table.Unit {
			fg.emit(bytecode.I(bytecode.OpRet))
		}
	}
	fg.popBound()

	locals, err := safecast.Conv[uint32](fg.maxSlots)
	if err != nil {
		return &Error{Kind: ErrTooManyLocals, Func: f.Name, Span: f.Span}
	}
	out.NumLocals = locals
	out.Code = fg.code
	return nil
}
