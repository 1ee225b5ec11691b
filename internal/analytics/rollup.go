package analytics

import "github.com/Veraticus/rankflow/internal/service"

// stats accumulates the facts that share one rollup key.
type stats struct {
	keywords    map[int64]struct{}
	visibility  float64
	positionSum int
	positioned  int
	facts       int
	top3        int
	top10       int
	top20       int
	outOfTop20  int
	striking    int
}

// averaged decides which positions enter a rollup's average position.
type averaged func(service.Fact) bool

func withinWindow(f service.Fact) bool {
	return f.Position != nil && !f.IsOutOfTop20()
}

func upToTop20(f service.Fact) bool {
	return f.Position != nil && *f.Position <= 20
}

func anyPosition(f service.Fact) bool {
	return f.Position != nil
}

func (s *stats) add(f service.Fact, avg averaged) {
	s.facts++
	s.keywords[f.KeywordID] = struct{}{}

	if f.Visibility != nil {
		s.visibility += *f.Visibility
	}
	if avg(f) {
		s.positionSum += *f.Position
		s.positioned++
	}

	if f.IsOutOfTop20() {
		s.outOfTop20++
		return
	}
	if f.Position == nil {
		return
	}

	p := *f.Position
	if p <= 3 {
		s.top3++
	}
	if p <= 10 {
		s.top10++
	}
	s.top20++
	if p >= 4 && p <= 10 {
		s.striking++
	}
}

func (s *stats) avgPosition() float64 {
	if s.positioned == 0 {
		return 0
	}
	return float64(s.positionSum) / float64(s.positioned)
}

// rollup reduces facts into one accumulator per key. Facts for which key
// reports false are left out. Keys are returned in first-seen order.
func rollup[K comparable](facts []service.Fact, key func(service.Fact) (K, bool), avg averaged) ([]K, map[K]*stats) {
	var order []K
	acc := make(map[K]*stats)

	for _, f := range facts {
		k, ok := key(f)
		if !ok {
			continue
		}
		s, seen := acc[k]
		if !seen {
			s = &stats{keywords: make(map[int64]struct{})}
			acc[k] = s
			order = append(order, k)
		}
		s.add(f, avg)
	}

	return order, acc
}

func shareOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}
