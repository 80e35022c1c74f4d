package searcher

import (
	"context"
	"isolation/game"

	"github.com/rs/zerolog/log"
)

// Deepen is an anytime search. It reports one legal action immediately, then runs
// full searches at increasing depth and reports the action of each completed pass.
//
// The context is only checked between passes: a pass in flight always completes, and
// the host is expected to read the mailbox when its own deadline expires. Deepen
// returns when the context is done or after the maximum depth, if one is set.
func (ab *AlphaBeta) Deepen(ctx context.Context, state game.State, out *Mailbox) {
	ab.metrics.Start()

	p := ab.newPass(state)
	if len(p.actions) == 0 {
		log.Warn().Msgf("no legal actions for player %d at ply %d", p.player, state.PlyCount())
		return
	}
	out.Put(p.actions[ab.rng.Intn(len(p.actions))], 0)

	for depth := ab.startDepth; ab.maxDepth == 0 || depth <= ab.maxDepth; depth++ {
		if ctx.Err() != nil {
			return
		}
		action, value, _ := p.run(depth)
		out.Put(action, depth)
		ab.metrics.CompleteDepth(depth)
		log.Debug().
			Int("ply", state.PlyCount()).
			Int("depth", depth).
			Int("action", int(action)).
			Float64("value", value).
			Msg("completed search pass")
	}
}
