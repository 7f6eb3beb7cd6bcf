package sheets

import (
	"context"
	"errors"

	"github.com/mnakata/mcp-gsheets/internal/gsheets"
)

// fakeClient implements gsheets.Client with per-method hooks. Unhooked
// methods fail, so a test only wires the calls it expects.
type fakeClient struct {
	infoFn             func(ctx context.Context, id string) (*gsheets.SpreadsheetInfo, error)
	readValuesFn       func(ctx context.Context, id, rng string) (*gsheets.ValueGrid, error)
	readFormulasFn     func(ctx context.Context, id, rng string) (*gsheets.ValueGrid, error)
	readAllFn          func(ctx context.Context, id, rng string) (*gsheets.ValueGrid, *gsheets.ValueGrid, error)
	updateValuesFn     func(ctx context.Context, id, rng string, values [][]any) (*gsheets.UpdateResult, error)
	batchUpdateFn      func(ctx context.Context, id string, updates []gsheets.ValueInput) (*gsheets.BatchUpdateResult, error)
	appendValuesFn     func(ctx context.Context, id, rng string, values [][]any) (*gsheets.UpdateResult, error)
	addSheetFn         func(ctx context.Context, id, title string, rows, cols int64) (*gsheets.SheetInfo, error)
	deleteSheetFn      func(ctx context.Context, id, title string) (*gsheets.DeleteSheetResult, error)
	formattingFn       func(ctx context.Context, id, rng string) (*gsheets.FormattingInfo, error)
	updateFormattingFn func(ctx context.Context, id, title string, gr gsheets.GridRange, format *gsheets.CellFormat) (*gsheets.FormatUpdateResult, error)
	resolveSheetFn     func(ctx context.Context, id, title string) (*gsheets.SheetInfo, error)
}

var errUnexpectedCall = errors.New("unexpected client call")

func (f *fakeClient) Info(ctx context.Context, id string) (*gsheets.SpreadsheetInfo, error) {
	if f.infoFn == nil {
		return nil, errUnexpectedCall
	}
	return f.infoFn(ctx, id)
}

func (f *fakeClient) ReadValues(ctx context.Context, id, rng string) (*gsheets.ValueGrid, error) {
	if f.readValuesFn == nil {
		return nil, errUnexpectedCall
	}
	return f.readValuesFn(ctx, id, rng)
}

func (f *fakeClient) ReadFormulas(ctx context.Context, id, rng string) (*gsheets.ValueGrid, error) {
	if f.readFormulasFn == nil {
		return nil, errUnexpectedCall
	}
	return f.readFormulasFn(ctx, id, rng)
}

func (f *fakeClient) ReadAll(ctx context.Context, id, rng string) (*gsheets.ValueGrid, *gsheets.ValueGrid, error) {
	if f.readAllFn == nil {
		return nil, nil, errUnexpectedCall
	}
	return f.readAllFn(ctx, id, rng)
}

func (f *fakeClient) UpdateValues(ctx context.Context, id, rng string, values [][]any) (*gsheets.UpdateResult, error) {
	if f.updateValuesFn == nil {
		return nil, errUnexpectedCall
	}
	return f.updateValuesFn(ctx, id, rng, values)
}

func (f *fakeClient) BatchUpdateValues(ctx context.Context, id string, updates []gsheets.ValueInput) (*gsheets.BatchUpdateResult, error) {
	if f.batchUpdateFn == nil {
		return nil, errUnexpectedCall
	}
	return f.batchUpdateFn(ctx, id, updates)
}

func (f *fakeClient) AppendValues(ctx context.Context, id, rng string, values [][]any) (*gsheets.UpdateResult, error) {
	if f.appendValuesFn == nil {
		return nil, errUnexpectedCall
	}
	return f.appendValuesFn(ctx, id, rng, values)
}

func (f *fakeClient) AddSheet(ctx context.Context, id, title string, rows, cols int64) (*gsheets.SheetInfo, error) {
	if f.addSheetFn == nil {
		return nil, errUnexpectedCall
	}
	return f.addSheetFn(ctx, id, title, rows, cols)
}

func (f *fakeClient) DeleteSheet(ctx context.Context, id, title string) (*gsheets.DeleteSheetResult, error) {
	if f.deleteSheetFn == nil {
		return nil, errUnexpectedCall
	}
	return f.deleteSheetFn(ctx, id, title)
}

func (f *fakeClient) Formatting(ctx context.Context, id, rng string) (*gsheets.FormattingInfo, error) {
	if f.formattingFn == nil {
		return nil, errUnexpectedCall
	}
	return f.formattingFn(ctx, id, rng)
}

func (f *fakeClient) UpdateFormatting(ctx context.Context, id, title string, gr gsheets.GridRange, format *gsheets.CellFormat) (*gsheets.FormatUpdateResult, error) {
	if f.updateFormattingFn == nil {
		return nil, errUnexpectedCall
	}
	return f.updateFormattingFn(ctx, id, title, gr, format)
}

func (f *fakeClient) ResolveSheet(ctx context.Context, id, title string) (*gsheets.SheetInfo, error) {
	if f.resolveSheetFn == nil {
		return nil, errUnexpectedCall
	}
	return f.resolveSheetFn(ctx, id, title)
}
