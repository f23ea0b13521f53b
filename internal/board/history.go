package board

// pushHistory records the pre-move state, dropping the oldest entry once
// the configured depth is reached.
func (b *Board) pushHistory(s Snapshot) {
	if len(b.history) >= b.cfg.UndoDepth {
		copy(b.history, b.history[1:])
		b.history = b.history[:len(b.history)-1]
	}
	b.history = append(b.history, s)
}

// CanUndo reports whether a previous state is available.
func (b *Board) CanUndo() bool {
	return len(b.history) > 0
}

// UndoAvailable returns how many moves can currently be undone.
func (b *Board) UndoAvailable() int {
	return len(b.history)
}

// Undo restores the cells and score from before the last successful move.
// Returns false when there is nothing to undo.
func (b *Board) Undo() bool {
	n := len(b.history)
	if n == 0 {
		return false
	}

	prev := b.history[n-1]
	b.history = b.history[:n-1]
	b.cells = prev.Cells
	b.score = prev.Score
	return true
}
