package navigator

type pageStack struct {
	items []Page
}

func (s *pageStack) Push(p Page) {
	if p == nil {
		return
	}
	s.items = append(s.items, p)
}

func (s *pageStack) Pop() Page {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return last
}

func (s pageStack) Top() Page {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s pageStack) Len() int {
	return len(s.items)
}

func (s *pageStack) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s pageStack) Titles() []string {
	titles := make([]string, len(s.items))
	for i, p := range s.items {
		titles[i] = p.Title()
	}
	return titles
}
