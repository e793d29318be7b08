package window

// EventsConsumerStrategy decides how many queued events are handled between
// two frame checks. The first poll may wait up to timeoutMs; the rest do not
// wait.
type EventsConsumerStrategy interface {
	Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int
}

type DrainAllStrategy struct{}

func (DrainAllStrategy) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	return drain(poll, handle, timeoutMs, -1)
}

// DrainMaxStrategy handles at most Max events per call, so a flood of input
// cannot starve rendering.
type DrainMaxStrategy struct {
	Max int
}

func (s DrainMaxStrategy) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	return drain(poll, handle, timeoutMs, max(s.Max, 1))
}

// drain handles events until poll reports none or limit is reached; a
// negative limit means no limit.
func drain(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs, limit int) int {
	count := 0
	for limit < 0 || count < limit {
		wait := 0
		if count == 0 {
			wait = timeoutMs
		}
		event, ok := poll(wait)
		if !ok {
			break
		}
		handle(event)
		count++
	}
	return count
}

func DrainAll() EventsConsumerStrategy {
	return DrainAllStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	return DrainMaxStrategy{Max: max}
}
