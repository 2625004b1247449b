package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle carries the application's non-UI resources shared by every window.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(appCtx context.Context, opts Options) Bundle {
	return Bundle{
		Datasource: NewDatasource(appCtx, opts),
	}
}
