package dashboard

import (
	"context"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signalboard/internal/render"
	"github.com/leapstack-labs/signalboard/internal/ui/components"
)

// ssePainter patches each painted region into the page over SSE.
type ssePainter struct {
	sse *datastar.ServerSentEventGenerator
}

func (p ssePainter) Paint(_ context.Context, regions ...render.Region) error {
	for _, r := range regions {
		if err := p.sse.PatchElementTempl(components.Region(r)); err != nil {
			return err
		}
	}
	return nil
}
