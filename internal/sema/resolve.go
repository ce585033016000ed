package sema

import (
	"github.com/rknit/whiskc/internal/ast"
	"github.com/rknit/whiskc/internal/diag"
	"github.com/rknit/whiskc/internal/hir"
	"github.com/rknit/whiskc/internal/source"
	"github.com/rknit/whiskc/internal/symbols"
)

type Options struct {
	ModuleName string
	// MaxDiagnostics caps the collected diagnostics; 0 keeps all of them.
	MaxDiagnostics int
}

type Result struct {
	Module  *hir.Module
	Symbols *symbols.Table
}

// Resolve turns file into HIR. On failure the error is *Errors and no
// partial result is returned.
func Resolve(file *ast.File, opts Options) (*Result, error) {
	r := &resolver{
		table: symbols.NewTable(),
		bag:   diag.NewBag(opts.MaxDiagnostics),
		ids:   make(map[*ast.Item]symbols.FuncID, len(file.Items)),
	}
	r.reporter = diag.BagReporter{Bag: r.bag}

	r.declareItems(file.Items)
	m := &hir.Module{Name: opts.ModuleName, Source: file.Source, Symbols: r.table}
	for _, it := range file.Items {
		id, ok := r.ids[it]
		if !ok {
			continue
		}
		if f := r.resolveItem(it, id); f != nil {
			m.Funcs = append(m.Funcs, f)
		}
	}

	if r.bag.HasErrors() {
		r.bag.Sort()
		return nil, &Errors{Diagnostics: r.bag.Items()}
	}
	return &Result{Module: m, Symbols: r.table}, nil
}

type resolver struct {
	table    *symbols.Table
	bag      *diag.Bag
	reporter diag.Reporter
	ids      map[*ast.Item]symbols.FuncID

	fn        symbols.FuncID
	block     symbols.BlockID
	loopDepth int
}

func (r *resolver) errorf(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(r.reporter, code, sp, msg)
}

// declareItems registers every signature before any body is resolved.
func (r *resolver) declareItems(items []*ast.Item) {
	for _, it := range items {
		sig := &it.Sig
		result := r.lookupType(sig.Result)
		fid, ok := r.table.DeclareFunc(symbols.Func{
			Name:   sig.Name.Value,
			Span:   sig.Name.Span,
			Result: result,
			Extern: it.Kind == ast.ItemExtern,
		})
		if !ok {
			prev := r.table.Funcs.Get(fid)
			r.errorf(diag.SemaDuplicateFunction, sig.Name.Span, "function '"+sig.Name.Value+"' is already declared").
				WithNote(prev.Span, "previous declaration here").
				Emit()
			continue
		}
		r.ids[it] = fid

		fn := r.table.Funcs.Get(fid)
		if it.Body != nil {
			fn.Entry = r.table.NewBlock(symbols.NoBlockID, fid, it.Body.Span)
		}
		seen := make(map[string]source.Span, sig.Params.Len())
		for _, param := range sig.Params.Items {
			if prev, dup := seen[param.Name.Value]; dup {
				r.errorf(diag.SemaDuplicateParam, param.Name.Span, "duplicate parameter '"+param.Name.Value+"'").
					WithNote(prev, "first declared here").
					Emit()
				continue
			}
			seen[param.Name.Value] = param.Name.Span
			ty := r.lookupType(param.Type)
			if ty == r.table.Unit {
				r.errorf(diag.SemaTypeMismatch, param.Type.Span, "parameter '"+param.Name.Value+"' cannot have type unit").Emit()
			}
			vid := r.table.DeclareVar(symbols.Var{
				Name:  param.Name.Value,
				Type:  ty,
				Span:  param.Name.Span,
				Block: fn.Entry,
				Param: true,
			})
			fn.Params = append(fn.Params, vid)
		}
		if sig.Name.Value == "main" && sig.Params.Len() > 0 {
			r.errorf(diag.SemaArityMismatch, sig.Name.Span, "main must not take parameters").Emit()
		}
	}
}

func (r *resolver) lookupType(ref ast.TypeRef) symbols.TypeID {
	id, ok := r.table.LookupType(ref.Value)
	if !ok {
		r.errorf(diag.SemaUnknownType, ref.Span, "unknown type '"+ref.Value+"'").Emit()
		return symbols.NoTypeID
	}
	return id
}

func (r *resolver) resolveItem(it *ast.Item, fid symbols.FuncID) *hir.Func {
	sym := r.table.Funcs.Get(fid)
	f := &hir.Func{ID: fid, Name: sym.Name, Result: sym.Result, Span: it.Span}
	for _, vid := range sym.Params {
		v := r.table.Vars.Get(vid)
		f.Params = append(f.Params, hir.Param{Name: v.Name, Var: vid, Type: v.Type})
	}
	if it.Body == nil {
		return f
	}

	r.fn, r.block, r.loopDepth = fid, sym.Entry, 0
	body := &hir.Block{ID: sym.Entry, Span: it.Body.Span}
	r.resolveStmts(body, it.Body)
	r.resolveEntryTail(body, it.Body.Tail)
	r.fn, r.block = symbols.NoFuncID, symbols.NoBlockID

	if sym.Result.IsValid() && sym.Result != r.table.Unit && !body.Terminates() {
		r.errorf(diag.SemaMissingReturn, sym.Span, "function '"+sym.Name+"' must return a value of type "+r.table.TypeName(sym.Result)).Emit()
	}
	f.Body = body
	return f
}

// resolveEntryTail turns the trailing value of a function body into its
// return value. A unit-typed tail in a unit function stays a statement.
func (r *resolver) resolveEntryTail(body *hir.Block, tail *ast.Expr) {
	if tail == nil {
		return
	}
	if isStmtExpr(tail) {
		r.resolveExprStmt(body, tail)
		return
	}
	value := r.resolveExpr(tail)
	if value == nil {
		// already reported; the tail still ends the body
		body.Stmts = append(body.Stmts, hir.Stmt{Kind: hir.StmtReturn, Span: tail.Span, Data: hir.ReturnData{}})
		return
	}
	result := r.table.Funcs.Get(r.fn).Result
	if result == r.table.Unit && value.Type == r.table.Unit {
		body.Stmts = append(body.Stmts, hir.Stmt{Kind: hir.StmtExpr, Span: tail.Span, Data: hir.ExprStmtData{Expr: value}})
		return
	}
	r.checkReturnType(value, tail.Span)
	body.Stmts = append(body.Stmts, hir.Stmt{Kind: hir.StmtReturn, Span: tail.Span, Data: hir.ReturnData{Value: value}})
}
