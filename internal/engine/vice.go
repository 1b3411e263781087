package engine

// sweepBreakdowns destroys every monster whose vice counters have reached
// the breakdown threshold, crediting each breakdown to the owner's
// opponent. Runs at the breakdown_check phase and after any resolution that
// changed counters. Each breakdown produces three events, in board order
// (host board first).
func sweepBreakdowns(e *emitter) {
	if e.gs.GameOver {
		return
	}

	type victim struct {
		seat Seat
		id   string
	}
	var victims []victim
	for _, seat := range Seats() {
		for _, bc := range e.gs.Players[seat].Board {
			if bc.ViceCounters >= BreakdownThreshold {
				victims = append(victims, victim{seat: seat, id: bc.InstanceID})
			}
		}
	}

	for _, v := range victims {
		credited := v.seat.Opponent()
		e.emit(Event{Type: EventCardDestroyed, Seat: v.seat, CardID: v.id})
		e.emit(Event{Type: EventCardToGrave, Seat: v.seat, CardID: v.id})
		e.emit(Event{Type: EventBreakdown, Seat: v.seat, CardID: v.id, CreditedTo: credited})
	}

	for _, seat := range Seats() {
		if e.gs.Players[seat].BreakdownsCaused >= MaxBreakdownsToWin {
			e.emit(Event{Type: EventGameEnded, Winner: seat, Reason: WinReasonBreakdown})
			return
		}
	}
}
