package game

// publisher fans changes out to observers. It remembers the last value it
// published per field and drops repeats, so each observer sees every
// distinct value exactly once. The zero State is the initial published
// value: a fresh round does not announce score 0 or count 0.
type publisher struct {
	nextID int
	subs   []subscription
	last   State
}

type subscription struct {
	id int
	fn Observer
}

// subscribe registers fn and returns a func that removes it. The returned
// func may be called more than once.
func (p *publisher) subscribe(fn Observer) func() {
	id := p.nextID
	p.nextID++
	p.subs = append(p.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// publish announces f if its value in st differs from the last one published.
func (p *publisher) publish(f Field, st State) {
	switch f {
	case FieldScrambledWord:
		if st.ScrambledWord == p.last.ScrambledWord {
			return
		}
		p.last.ScrambledWord = st.ScrambledWord
	case FieldScore:
		if st.Score == p.last.Score {
			return
		}
		p.last.Score = st.Score
	case FieldWordCount:
		if st.WordCount == p.last.WordCount {
			return
		}
		p.last.WordCount = st.WordCount
	default:
		return
	}
	// Observers may unsubscribe while being notified.
	subs := append([]subscription(nil), p.subs...)
	for _, s := range subs {
		s.fn(Change{Field: f, State: st})
	}
}
