package core

import (
	"math/bits"
	"sync/atomic"
)

// Iterative-deepening negamax search (spec.md 4.10), move ordering
// (4.11), and the draw-by-repetition heuristic (4.10's "Draw-by-repetition
// detection"), generalizing the teacher's Searcher (see DESIGN.md) to the
// pseudolegal-generate-then-filter architecture the rest of this package
// uses instead of Blunder's pin-aware generator.

const (
	// MaxPly bounds recursion depth and the size of ply-indexed tables
	// (killers, the PV triangle); spec.md 4.10 step 1's "limit".
	MaxPly = 100

	// Infinity is a search bound wide enough that negating it twice never
	// overflows an int once MateValue is added on top (spec.md 9's note
	// on mate-safe score widths).
	Infinity = 1 << 20

	// MateValue is the score assigned to "mate in 0 at this node"; a mate
	// found at ply p scores MateValue-p, so shallower mates compare higher
	// (spec.md 4.10 step 11).
	MateValue = Infinity - MaxPly - 1

	// checkNodeInterval is the node-count mask at which the time manager
	// is polled (spec.md 5: "every 4096" nodes).
	checkNodeInterval = 4095

	captureBase = 100000
)

// Tuning collects the pruning-schedule constants spec.md 9 names as tuning
// parameters rather than pinned values (null-move R, reverse-futility and
// futility margins, LMR thresholds, the panic-time score-drop trigger and
// aspiration window width). DefaultTuning's values are adopted from
// original_source/shakmat-engine's search constants (see DESIGN.md); an
// engine.toml config layer overrides individual fields at the front-end
// layer, leaving this package itself ignorant of any config file format.
type Tuning struct {
	AspirationWindow      int
	NullMoveR             int
	ReverseFutilityMargin int
	FutilityMarginPerPly  int
	LMRMinDepth           int
	LMRMinLegalCount      int
	PanicScoreDrop        int
}

// DefaultTuning returns the engine's built-in pruning schedule.
func DefaultTuning() Tuning {
	return Tuning{
		AspirationWindow:      25,
		NullMoveR:             2,
		ReverseFutilityMargin: 85,
		FutilityMarginPerPly:  120,
		LMRMinDepth:           3,
		LMRMinLegalCount:      3,
		PanicScoreDrop:        150,
	}
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.AspirationWindow == 0 {
		t.AspirationWindow = d.AspirationWindow
	}
	if t.NullMoveR == 0 {
		t.NullMoveR = d.NullMoveR
	}
	if t.ReverseFutilityMargin == 0 {
		t.ReverseFutilityMargin = d.ReverseFutilityMargin
	}
	if t.FutilityMarginPerPly == 0 {
		t.FutilityMarginPerPly = d.FutilityMarginPerPly
	}
	if t.LMRMinDepth == 0 {
		t.LMRMinDepth = d.LMRMinDepth
	}
	if t.LMRMinLegalCount == 0 {
		t.LMRMinLegalCount = d.LMRMinLegalCount
	}
	if t.PanicScoreDrop == 0 {
		t.PanicScoreDrop = d.PanicScoreDrop
	}
	return t
}

// RepetitionPolicy selects how aggressively draw-by-repetition is
// recognized inside the search tree (spec.md 9's first open question:
// this is a heuristic, not a rule of chess, and is therefore exposed as
// configuration rather than hardcoded).
type RepetitionPolicy int

const (
	// RepetitionStandard treats a position as a search-time draw on its
	// third occurrence anywhere in playedHashes+path, or on its
	// second occurrence if both repetitions happened inside the current
	// search tree (spec.md 4.10's exact rule).
	RepetitionStandard RepetitionPolicy = iota
	// RepetitionThreefoldOnly disables the early two-in-tree exit and
	// only recognizes a literal threefold repetition.
	RepetitionThreefoldOnly
)

// SearchOptions configures one call to Search.Run.
type SearchOptions struct {
	MaxDepth         int
	TimeControl      TimeControl
	Contempt         int // score returned for a detected draw, side-to-move POV
	RepetitionPolicy RepetitionPolicy
	Tuning           Tuning // zero fields fall back to DefaultTuning
}

// Search owns everything a single search needs: the transposition table,
// evaluator, time manager, and move-ordering state. Per spec.md 5, a
// Search is used by one goroutine at a time and is not safe to share.
type Search struct {
	tt   *TranspositionTable
	eval Evaluator
	tm   *TimeManager

	opts SearchOptions

	killers [MaxPly][2]Move
	history [2][64][64]int

	pvTable  [MaxPly][MaxPly]Move
	pvLength [MaxPly]int

	playedHashes []uint64      // hashes that actually occurred in the game so far, indexed by absolute ply
	path         [MaxPly]uint64 // hash at each search-local ply from the current root, overwritten per DFS descent
	rootPly      int            // pos.Ply at the start of the current Run call

	nodes   uint64
	stopped bool

	// stopRequested is set by Stop, callable from another goroutine while
	// Run is in flight (the UCI "stop" command's cooperative-cancellation
	// contract, spec.md 5). Polled at the same node-interval checkpoint as
	// the time manager.
	stopRequested int32
}

// Stop asks a running Run call to return as soon as it next polls for
// cancellation. Safe to call from a different goroutine than the one
// running Run.
func (s *Search) Stop() {
	atomic.StoreInt32(&s.stopRequested, 1)
}

// NewSearch constructs a Search with the given table, evaluator, and
// already-played game history (used for repetition detection).
func NewSearch(tt *TranspositionTable, eval Evaluator, playedHashes []uint64) *Search {
	return &Search{tt: tt, eval: eval, playedHashes: playedHashes}
}

// Result is what Run returns: the best move found, its score, and the
// principal variation from the deepest completed iteration.
type Result struct {
	Move  Move
	Score int
	PV    []Move
	Depth int
	Nodes uint64
}

// Run performs iterative deepening from pos's current state (spec.md
// 4.10's "Driver"): depth 1, 2, ... up to opts.MaxDepth (or until the time
// manager reports the budget exhausted), maintaining the best move and an
// aspiration window around the previous iteration's score.
func (s *Search) Run(pos *Position, opts SearchOptions) Result {
	opts.Tuning = opts.Tuning.withDefaults()
	s.opts = opts
	s.tm = NewTimeManager(opts.TimeControl)
	s.nodes = 0
	s.stopped = false
	atomic.StoreInt32(&s.stopRequested, 0)
	s.rootPly = pos.Ply

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPly-1 {
		maxDepth = MaxPly - 1
	}

	legalAtRoot := LegalMoves(pos)
	result := Result{}
	if len(legalAtRoot) == 0 {
		return result
	}
	result.Move = legalAtRoot[0]

	score := 0

	for depth := 1; depth <= maxDepth; depth++ {
		var alpha, beta int
		if depth == 1 {
			alpha, beta = -Infinity, Infinity
		} else {
			alpha, beta = score-opts.Tuning.AspirationWindow, score+opts.Tuning.AspirationWindow
		}

		var iterScore int
		for {
			iterScore = s.negamax(pos, depth, 0, alpha, beta, true)
			if s.stopped {
				break
			}
			if iterScore <= alpha {
				alpha = -Infinity
				continue
			}
			if iterScore >= beta {
				beta = Infinity
				continue
			}
			break
		}

		if s.stopped {
			break
		}

		if score != 0 && iterScore < score-opts.Tuning.PanicScoreDrop {
			s.tm.AddPanicTime()
		}

		score = iterScore
		result.Score = score
		result.Depth = depth
		result.Nodes = s.nodes
		if s.pvLength[0] > 0 {
			result.Move = s.pvTable[0][0]
			result.PV = append([]Move(nil), s.pvTable[0][:s.pvLength[0]]...)
		}

		if len(legalAtRoot) == 1 {
			break
		}
		if isMateScore(score) {
			break
		}
		if s.tm.TimesUp() {
			break
		}
	}

	return result
}

func isMateScore(score int) bool {
	return score >= MateValue-MaxPly || score <= -(MateValue-MaxPly)
}

// negamax implements spec.md 4.10's "Negamax at an interior node".
// Signature and semantics match the spec: scores are from the
// side-to-move's point of view.
func (s *Search) negamax(pos *Position, depthRemaining, ply int, alpha, beta int, allowNull bool) int {
	isPV := beta-alpha > 1
	s.pvLength[ply] = ply

	if ply >= MaxPly {
		return s.eval.Evaluate(pos)
	}
	s.path[ply] = pos.Hash

	s.nodes++
	if s.nodes&checkNodeInterval == 0 && (s.tm.TimesUp() || atomic.LoadInt32(&s.stopRequested) != 0) {
		s.stopped = true
		return 0
	}

	var ttMove Move
	if entry, ok := s.tt.Probe(pos.Hash); ok {
		ttMove = entry.BestMove
		if entry.Depth >= depthRemaining && ply > 0 {
			switch entry.Bound {
			case BoundExact:
				return entry.Score
			case BoundLowerbound:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case BoundUpperbound:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	if ply > 0 && s.isDraw(pos) {
		return s.opts.Contempt
	}

	inCheck := pos.InCheck(pos.SideToMove)
	if inCheck {
		depthRemaining++
	}

	if depthRemaining <= 0 {
		return s.quiescence(pos, ply, alpha, beta)
	}

	staticEval := s.eval.Evaluate(pos)

	if !isPV && !inCheck && !isMateScore(beta) {
		if staticEval-s.opts.Tuning.ReverseFutilityMargin*depthRemaining >= beta {
			return staticEval
		}
	}

	nullMoveR := s.opts.Tuning.NullMoveR
	if allowNull && !isPV && !inCheck && depthRemaining > nullMoveR+1 && hasNonPawnMaterial(pos, pos.SideToMove) {
		undo := pos.DoNullMove()
		score := -s.negamax(pos, depthRemaining-nullMoveR-1, ply+1, -beta, -beta+1, false)
		pos.UndoNullMove(undo)
		if s.stopped {
			return 0
		}
		if score >= beta && !isMateScore(score) {
			return beta
		}
		// A negative mate score means we'd be mated even after handing the
		// opponent a free move, a sign the null search missed a real threat
		// (zugzwang-adjacent). Search this node one ply deeper instead of
		// trusting the cutoff.
		if score <= -(MateValue - MaxPly) {
			depthRemaining++
		}
	}

	futilityPrune := false
	if !isPV && !inCheck && depthRemaining <= 3 && !isMateScore(alpha) {
		margin := s.opts.Tuning.FutilityMarginPerPly * depthRemaining
		if staticEval+margin < alpha {
			futilityPrune = true
		}
	}

	moves := orderMoves(pos, PseudolegalMoves(pos), ttMove, s.killers[ply], &s.history, pos.SideToMove)

	legalCount := 0
	bestScore := -Infinity
	var bestMove Move
	bound := BoundUpperbound

	for _, m := range moves {
		isCapture := isCaptureMove(pos, m)

		pos.DoMove(m)
		if pos.InCheck(pos.SideToMove.Other()) {
			pos.UndoMove(m)
			continue
		}
		legalCount++

		isTactical := isCapture || m.Kind == MovePromotion || pos.InCheck(pos.SideToMove)

		if futilityPrune && legalCount > 1 && !isTactical {
			pos.UndoMove(m)
			continue
		}

		reduction := 0
		if !isPV && !isTactical && depthRemaining >= s.opts.Tuning.LMRMinDepth && legalCount > s.opts.Tuning.LMRMinLegalCount {
			reduction = 1 + (legalCount-s.opts.Tuning.LMRMinLegalCount)/6
			if reduction > depthRemaining-1 {
				reduction = depthRemaining - 1
			}
		}

		var score int
		if legalCount == 1 {
			score = -s.negamax(pos, depthRemaining-1, ply+1, -beta, -alpha, true)
		} else {
			score = -s.negamax(pos, depthRemaining-1-reduction, ply+1, -alpha-1, -alpha, true)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.negamax(pos, depthRemaining-1, ply+1, -beta, -alpha, true)
			}
		}

		pos.UndoMove(m)

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = BoundExact
			s.pvTable[ply][ply] = m
			copy(s.pvTable[ply][ply+1:], s.pvTable[ply+1][ply+1:s.pvLength[ply+1]])
			s.pvLength[ply] = s.pvLength[ply+1]
		}
		if alpha >= beta {
			if !isCapture {
				s.recordKiller(ply, m)
				s.updateHistory(pos.SideToMove.Other(), m, depthRemaining, true)
			}
			bound = BoundLowerbound
			break
		}
		if !isCapture {
			s.updateHistory(pos.SideToMove.Other(), m, depthRemaining, false)
		}
	}

	if legalCount == 0 {
		if inCheck {
			return -(MateValue - ply)
		}
		return s.opts.Contempt
	}

	s.tt.Store(pos.Hash, depthRemaining, bestScore, bound, bestMove)
	return bestScore
}

// quiescence implements spec.md 4.10's "Quiescence".
func (s *Search) quiescence(pos *Position, ply, alpha, beta int) int {
	s.nodes++
	if s.nodes&checkNodeInterval == 0 && (s.tm.TimesUp() || atomic.LoadInt32(&s.stopRequested) != 0) {
		s.stopped = true
		return 0
	}
	if ply >= MaxPly {
		return s.eval.Evaluate(pos)
	}

	standPat := s.eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := orderMoves(pos, CaptureMoves(pos), Move{}, [2]Move{}, &s.history, pos.SideToMove)
	for _, m := range moves {
		pos.DoMove(m)
		if pos.InCheck(pos.SideToMove.Other()) {
			pos.UndoMove(m)
			continue
		}
		score := -s.quiescence(pos, ply+1, -beta, -alpha)
		pos.UndoMove(m)

		if s.stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (s *Search) recordKiller(ply int, m Move) {
	if s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

func (s *Search) updateHistory(side Color, m Move, depth int, bonus bool) {
	delta := depth * depth
	cell := &s.history[side][m.From][m.To]
	if bonus {
		*cell += delta
	} else {
		*cell -= delta
	}
	if *cell >= 1<<20 || *cell <= -(1 << 20) {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				s.history[side][from][to] /= 2
			}
		}
	}
}

// isDraw implements spec.md 4.10's "Draw-by-repetition detection" plus the
// 50-move rule and a simple insufficient-material check, per the
// RepetitionPolicy configured for this search (spec.md 9's first open
// question: the two-vs-three-repetition split is a heuristic surfaced as
// config, not a hardcoded rule).
func (s *Search) isDraw(pos *Position) bool {
	if pos.HalfMoveClock >= 100 {
		return true
	}
	if isInsufficientMaterial(pos) {
		return true
	}

	lastIrreversible := pos.Ply - pos.HalfMoveClock
	lastPlayedPly := len(s.playedHashes) - 1
	matches := 0

	for ply := pos.Ply - 2; ply >= lastIrreversible && ply >= 0; ply -= 2 {
		var hash uint64
		if ply < s.rootPly {
			if ply >= len(s.playedHashes) {
				continue
			}
			hash = s.playedHashes[ply]
		} else {
			localPly := ply - s.rootPly
			if localPly < 0 || localPly >= MaxPly {
				continue
			}
			hash = s.path[localPly]
		}
		if hash != pos.Hash {
			continue
		}
		matches++
		if matches >= 2 {
			return true
		}
		if s.opts.RepetitionPolicy == RepetitionStandard && ply > lastPlayedPly {
			return true
		}
	}
	return false
}

func isInsufficientMaterial(p *Position) bool {
	if p.pieceBB[Pawn] != 0 || p.pieceBB[Rook] != 0 || p.pieceBB[Queen] != 0 {
		return false
	}
	minors := bits.OnesCount64(uint64(p.pieceBB[Knight] | p.pieceBB[Bishop]))
	return minors <= 1
}

func hasNonPawnMaterial(p *Position, c Color) bool {
	nonPawnKing := p.colorBB[c] &^ (p.pieceBB[Pawn] | p.pieceBB[King])
	return nonPawnKing != 0
}

func isCaptureMove(p *Position, m Move) bool {
	if m.IsCastle() {
		return false
	}
	if !p.mailbox[m.To].IsNone() {
		return true
	}
	return m.To == p.EPSquare && p.mailbox[m.From].Type == Pawn
}

// orderMoves implements spec.md 4.11's priority bands: TT move, recapture,
// MVV-LVA captures, killers, then history-keyed quiet moves.
func orderMoves(pos *Position, moves []Move, ttMove Move, killers [2]Move, history *[2][64][64]int, side Color) []Move {
	type scored struct {
		m        Move
		priority int
	}
	ranked := make([]scored, len(moves))
	for i, m := range moves {
		ranked[i] = scored{m: m, priority: movePriority(pos, m, ttMove, killers, history, side)}
	}
	for i := 1; i < len(ranked); i++ {
		j := i
		for j > 0 && ranked[j-1].priority < ranked[j].priority {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
			j--
		}
	}
	out := make([]Move, len(ranked))
	for i, r := range ranked {
		out[i] = r.m
	}
	return out
}

func movePriority(pos *Position, m Move, ttMove Move, killers [2]Move, history *[2][64][64]int, side Color) int {
	const (
		bandTT          = 6_000_000
		bandRecapture   = 5_000_000
		bandCapture     = 4_000_000
		bandKillerOne   = 3_000_000
		bandKillerTwo   = 2_900_000
		bandHistoryBase = 0
	)

	if m == ttMove {
		return bandTT
	}

	if isCaptureMove(pos, m) || m.Kind == MovePromotion {
		victim := pos.mailbox[m.To]
		victimType := victim.Type
		if victimType == NoPieceType {
			victimType = Pawn // en passant (captured piece is a pawn) or a quiet promotion
		}
		attacker := pos.mailbox[m.From].Type
		score := captureBase + attackerVictimScore(victimType, attacker)
		if m.To == pos.lastTo {
			score += bandRecapture - bandCapture
		}
		return bandCapture + score
	}

	if m == killers[0] {
		return bandKillerOne
	}
	if m == killers[1] {
		return bandKillerTwo
	}

	return bandHistoryBase + history[side][m.From][m.To]
}

func attackerVictimScore(victim, attacker PieceType) int {
	return PieceValue(victim) - attackerValue(attacker)
}
