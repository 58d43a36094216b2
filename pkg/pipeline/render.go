package pipeline

import (
	"context"

	"github.com/matzehuels/ripple/pkg/errors"
	"github.com/matzehuels/ripple/pkg/expr"
	"github.com/matzehuels/ripple/pkg/render"
)

// Render generates output artifacts in the requested formats.
//
// Rendering with opts.Values evaluates the graph: the output shows
// whatever the graph currently holds, including any input overrides
// applied before the call.
func Render(ctx context.Context, p *expr.Program, opts Options) (map[string][]byte, error) {
	snap := render.Capture(p.Roots(), p.Label)
	dot := render.ToDOT(snap, render.Options{
		Rankdir: opts.Rankdir,
		Values:  opts.Values,
	})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
