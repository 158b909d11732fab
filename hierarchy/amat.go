package hierarchy

// CalculateAMAT returns the hierarchy's Average Memory Access Time given
// per-level hit times, using the current hit rates of whichever levels
// are enabled (spec.md §4.8). memPenalty defaults to the memory model's
// configured latency_cycles when omitted.
func (h *Hierarchy) CalculateAMAT(l1Hit, l2Hit float64, memPenalty ...float64) float64 {
	penalty := float64(h.mem.Config().LatencyCycles)
	if len(memPenalty) > 0 {
		penalty = memPenalty[0]
	}

	switch {
	case h.l1 == nil && h.l2 == nil:
		return penalty
	case h.l1 != nil && h.l2 == nil:
		return l1Hit + h.l1.Stats().MissRate()*penalty
	case h.l1 == nil && h.l2 != nil:
		return l2Hit + h.l2.Stats().MissRate()*penalty
	default:
		inner := l2Hit + h.l2.Stats().MissRate()*penalty
		return l1Hit + h.l1.Stats().MissRate()*inner
	}
}
